package main

import (
	"errors"
	"fmt"
	"os"

	"project-creator/internal/models"
)

const (
	AppName    = "Project Creator"
	AppID      = "com.projectcreator.app"
	AppVersion = "1.0.0"
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			fmt.Fprintln(os.Stderr, ve.Error())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
