package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"

	"github.com/jrsteele09/go-inventory-server/internal/config"
	"github.com/jrsteele09/go-inventory-server/notify"
	"github.com/jrsteele09/go-inventory-server/report"
	"github.com/jrsteele09/go-inventory-server/server"
	"github.com/jrsteele09/go-inventory-server/sheets"
	"github.com/jrsteele09/go-inventory-server/token"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Printf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	srv, err := buildServer(c)
	if err != nil {
		return fmt.Errorf("buildServer: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func buildServer(c config.Config) (*server.Server, error) {
	keyPEM, err := c.GetServiceAccountKeyPEM()
	if err != nil {
		return nil, fmt.Errorf("load service account key: %w", err)
	}

	assertions, err := token.NewAssertionSigner(
		c.GetServiceAccountEmail(),
		c.GetSheetsScope(),
		c.GetTokenEndpoint(),
		keyPEM,
		c.GetAssertionExpiry(),
	)
	if err != nil {
		return nil, fmt.Errorf("create assertion signer: %w", err)
	}

	exchange := token.NewExchangeClient(c.GetTokenEndpoint(), assertions, nil)
	sheetsClient := sheets.NewClient(c.GetSpreadsheetID(), exchange, nil)

	return server.New(
		c,
		sheets.NewUserStore(sheetsClient),
		sheetsClient,
		notify.NewSender(c.GetNotifyWebhookURL(), nil),
		report.NewClient(c.GetReportEndpoint(), nil),
	)
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
