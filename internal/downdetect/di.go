package downdetect

import (
	"taskboard/internal/storage"
)

var downdetectService = &DowndetectService{
	storage.GetDb(),
}
var downdetectController = &DowndetectController{
	downdetectService,
}

func GetDowndetectService() *DowndetectService {
	return downdetectService
}

func GetDowndetectController() *DowndetectController {
	return downdetectController
}
