package wire

import (
	"Inkwell/internal/api"
	"Inkwell/internal/api/config"
	"Inkwell/internal/api/handler"
	"Inkwell/internal/job"
	"Inkwell/internal/pkg/cron"
	"Inkwell/internal/pkg/kafka"
	inkmongo "Inkwell/internal/pkg/mongo"
	"Inkwell/internal/repository"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	articleRepo := repository.NewArticleRepo(db)
	actionRepo := repository.NewArticleActionRepo(db)
	userRepo := repository.NewUserRepo(db)
	followRepo := repository.NewUserFollowRepo(db)
	metricRepo := repository.NewArticleMetricRepo(db)
	notifyRepo := inkmongo.NewNotificationRepo(mongoDB)

	notifySvc := service.NewNotificationService(notifyRepo, userRepo, articleRepo, &cfg.Notification)
	statsSvc := service.NewArticleStatsService(articleRepo, actionRepo)
	actionSvc := service.NewArticleActionService(actionRepo, articleRepo, userRepo, notifySvc)
	followSvc := service.NewUserFollowService(followRepo, userRepo, notifySvc, &cfg.Follow)
	metricSvc := service.NewArticleMetricService(metricRepo, actionRepo)

	handlers := &api.HandlersGroup{
		ArticleStatsHandler:  handler.NewArticleStatsHandler(statsSvc, metricSvc),
		ArticleActionHandler: handler.NewArticleActionHandler(actionSvc),
		UserFollowHandler:    handler.NewUserFollowHandler(followSvc),
		NotificationHandler:  handler.NewNotificationHandler(notifySvc),
		NotifyWsHandler:      handler.NewNotifyWsHandler(),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg)
	if err != nil {
		return nil, err
	}

	metricJob := job.NewArticleMetricJob(articleRepo, actionRepo, metricSvc)
	cronMgr := cron.NewCronManager(metricJob)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
