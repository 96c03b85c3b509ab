// Command marwind is the window manager's process entrypoint: parse
// flags, load configuration, connect to a display backend, and run the
// manager's event loop until it quits or asks to be restarted.
package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/patrislav/marwind/config"
	"github.com/patrislav/marwind/display"
	"github.com/patrislav/marwind/display/wayland"
	"github.com/patrislav/marwind/display/x11"
	"github.com/patrislav/marwind/manager"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "marwind",
		Short: "A tiling window manager for X11 and Wayland (niri)",
		RunE:  run,
	}

	rootCmd.Flags().String("config", "", "path to a config file (default: search marwind.toml in ., $HOME/.config/marwind, /etc/marwind)")
	rootCmd.Flags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.Flags().String("display-backend", "", "display backend to use (x11, wayland)")

	if err := viper.BindPFlags(rootCmd.Flags()); err != nil {
		fmt.Fprintf(os.Stderr, "marwind: %v\n", err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "marwind: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	boot, err := config.Load(viper.GetString("config"))
	if err != nil {
		return err
	}
	if lvl := viper.GetString("log-level"); lvl != "" {
		boot.LogLevel = lvl
	}
	if backend := viper.GetString("display-backend"); backend != "" {
		boot.DisplayBackend = backend
	}

	rt, err := boot.IntoRuntime()
	if err != nil {
		return err
	}

	log := logrus.New()
	lvl, err := boot.LogrusLevel()
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	conn, err := connectBackend(log, rt.DisplayBackend())
	if err != nil {
		return err
	}

	m, err := manager.New(manager.Deps{Log: log, Runtime: rt, Conn: conn})
	if err != nil {
		_ = conn.Close()
		return err
	}

	if err := m.Init(); err != nil {
		_ = m.Close()
		return err
	}

	log.WithField("backend", rt.DisplayBackend()).Info("marwind: running")
	runErr := m.Run()
	_ = m.Close()
	if runErr != nil {
		return runErr
	}

	if m.ShouldRestart() {
		log.Info("marwind: restarting")
		return restart()
	}
	return nil
}

func connectBackend(log logrus.FieldLogger, backend string) (display.Connector, error) {
	switch backend {
	case "wayland":
		return wayland.Connect(log)
	case "x11", "":
		return x11.Connect(log)
	default:
		return nil, fmt.Errorf("marwind: unknown display backend %q", backend)
	}
}

// restart re-execs the current binary with its original arguments:
// restarting rebuilds all in-memory state from scratch rather than
// attempting a live reload.
func restart() error {
	self, err := os.Executable()
	if err != nil {
		return err
	}
	return syscall.Exec(self, os.Args, os.Environ())
}
