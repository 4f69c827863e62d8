package system_healthcheck

import (
	"taskboard/internal/config"
	"taskboard/internal/downdetect"
	"taskboard/internal/util/logger"
)

var healthcheckService = &HealthcheckService{
	downdetect.GetDowndetectService(),
	config.GetEnv().BackendRootPath,
	logger.GetLogger(),
}
var healthcheckController = &HealthcheckController{
	healthcheckService,
}

func GetHealthcheckController() *HealthcheckController {
	return healthcheckController
}
