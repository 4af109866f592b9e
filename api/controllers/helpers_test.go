package controllers

import (
	"io"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}
