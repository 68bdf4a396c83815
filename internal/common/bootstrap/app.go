package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// ServerApp 는 HTTP 서버와 백그라운드 작업의 수명주기를 묶는 실행 단위다.
type ServerApp struct {
	Name            string
	Logger          *slog.Logger
	Server          *http.Server
	ShutdownTimeout time.Duration
	BackgroundTasks []BackgroundTask
}

// NewServerApp 는 ServerApp 인스턴스를 생성한다.
func NewServerApp(
	name string,
	logger *slog.Logger,
	server *http.Server,
	shutdownTimeout time.Duration,
	backgroundTasks ...BackgroundTask,
) *ServerApp {
	return &ServerApp{
		Name:            name,
		Logger:          logger,
		Server:          server,
		ShutdownTimeout: shutdownTimeout,
		BackgroundTasks: backgroundTasks,
	}
}

// Run 는 서버와 백그라운드 작업을 실행하고 종료까지 대기한다.
func (a *ServerApp) Run(ctx context.Context) error {
	if a == nil {
		return nil
	}
	return RunHTTPServer(
		ctx,
		a.Logger,
		a.Name,
		a.Server,
		a.ShutdownTimeout,
		a.BackgroundTasks...,
	)
}
