package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
)

func DevCmd() *cobra.Command {
	var (
		appPort   int
		proxyPort int
	)

	dev := &cobra.Command{
		Use:   "dev",
		Short: "Serve the app with hot reload through air",
		Long: "Regenerates templ code and rebuilds cmd/server whenever a Go, templ, SQL or asset file\n" +
			"changes. air's proxy reloads the browser after each rebuild.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runGen(false); err != nil {
				return err
			}
			return runDev(appPort, proxyPort)
		},
	}

	dev.Flags().IntVar(&appPort, "port", 8090, "port the server listens on")
	dev.Flags().IntVar(&proxyPort, "proxy-port", 8080, "port of the live reload proxy")
	return dev
}

func runDev(appPort, proxyPort int) error {
	airPath, err := exec.LookPath("air")
	if err != nil {
		return fmt.Errorf("air not found, install with: go install github.com/air-verse/air@latest")
	}

	airArgs := []string{
		"air",
		"-c", "/dev/null",
		"-root", ".",
		"-build.cmd", "go run ./cmd/do gen && go build -o ./tmp/server ./cmd/server",
		"-build.bin", "./tmp/server",
		"-build.delay", "100",
		"-build.exclude_dir", "bin,tmp,data,_examples",
		"-build.exclude_regex", "_templ.go$|_test.go$",
		"-build.include_ext", "go,templ,sql,css,js",
		"-build.kill_delay", "500ms",
		"-build.send_interrupt", "true",
		"-proxy.enabled", "true",
		"-proxy.proxy_port", strconv.Itoa(proxyPort),
		"-proxy.app_port", strconv.Itoa(appPort),
	}

	env := append(os.Environ(), "PORT="+strconv.Itoa(appPort))
	return syscall.Exec(airPath, airArgs, env)
}
