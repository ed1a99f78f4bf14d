package config

// Config 配置主体
type Config struct {
	Server                 ServerConfig          `mapstructure:"server"`
	DB                     DBConfig              `mapstructure:"database"`
	Redis                  RedisConfig           `mapstructure:"redis"`
	Mongo                  MongoConfig           `mapstructure:"mongo"`
	Notification           NotificationConfig    `mapstructure:"notification"`
	Tracker                TrackerConfig         `mapstructure:"tracker"`
	Follow                 FollowConfig          `mapstructure:"follow"`
	Kafka                  KafkaConfig           `mapstructure:"kafka"`
	KafkaLikesConsumer     KafkaConsumerBinding  `mapstructure:"kafka_likes_consumer"`
	KafkaCommentsConsumer  KafkaConsumerBinding  `mapstructure:"kafka_comments_consumer"`
	KafkaFollowsConsumer   KafkaConsumerBinding  `mapstructure:"kafka_follows_consumer"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// NotificationConfig 通知收件箱配置
// RetentionCap 为每个接收者保留的通知上限，超出部分在新通知到达时裁剪
type NotificationConfig struct {
	RetentionCap int64 `mapstructure:"retention_cap"`
}

// TrackerConfig 浏览上报客户端配置
// DebounceMs 为挂载后触发上报前的防抖窗口，毫秒
type TrackerConfig struct {
	DebounceMs int `mapstructure:"debounce_ms"`
}

type FollowConfig struct {
	MaxFollowing  int64 `mapstructure:"max_following"`
	CacheSize     int   `mapstructure:"cache_size"`
	CacheTTLHours int   `mapstructure:"cache_ttl_hours"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaConsumerBinding struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}
