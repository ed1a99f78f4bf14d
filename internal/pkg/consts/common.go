package consts

const (
	NotifyTypeFollow  int8 = 1
	NotifyTypeLike    int8 = 2
	NotifyTypeComment int8 = 3
)
