package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		logrus.WithError(err).Error("cichain failed")
		os.Exit(1)
	}
}
