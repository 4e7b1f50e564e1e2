package handler

import (
	"github.com/sirupsen/logrus"

	"lockin/logging"
)

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}
