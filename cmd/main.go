/*
Copyright 2025 Kitpack Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/kitpack/kitpack"
	"github.com/kitpack/kitpack/config"
	"github.com/kitpack/kitpack/database"
	"github.com/kitpack/kitpack/internal/notification"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Kitpack represents the CLI application, encapsulating the root Cobra command.
type Kitpack struct {
	cmd *cobra.Command
}

// kitpackInstance holds the engine instance and its configuration, shared by
// all subcommands.
type kitpackInstance struct {
	kitpack *kitpack.Kitpack
	cnf     *config.Configuration
}

// recoverPanic handles any panics during program execution and logs the error using Logrus.
func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun loads the configuration and initializes the engine before any
// subcommand runs.
func preRun(app *kitpackInstance) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := config.InitConfig("kitpack.json")
		if err != nil {
			log.Fatal("error loading config", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		newKitpack, err := setupKitpack(cnf)
		if err != nil {
			notification.NotifyError(err)
			log.Fatal(err)
		}

		app.kitpack = newKitpack
		app.cnf = cnf

		return nil
	}
}

// setupKitpack connects the datasource and builds the engine on top of it.
func setupKitpack(cfg *config.Configuration) (*kitpack.Kitpack, error) {
	db, err := database.NewDataSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("error getting datasource: %v", err)
	}

	newKitpack, err := kitpack.NewKitpack(db)
	if err != nil {
		return nil, fmt.Errorf("error creating kitpack: %v", err)
	}
	return newKitpack, nil
}

// NewCLI creates the command-line interface for the Kitpack server.
func NewCLI() *Kitpack {
	var configFile string
	b := &kitpackInstance{}

	var rootCmd = &cobra.Command{
		Use:   "kitpack",
		Short: "Packing fulfillment engine",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./kitpack.json", "Configuration file for the server")

	rootCmd.PersistentPreRunE = preRun(b)

	rootCmd.AddCommand(serverCommands(b))
	rootCmd.AddCommand(migrateCommands(b))

	return &Kitpack{cmd: rootCmd}
}

// executeCLI runs the root command of the CLI application.
func (w Kitpack) executeCLI() {
	if err := w.cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()
	cli := NewCLI()
	cli.executeCLI()
}
