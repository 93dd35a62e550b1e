// Package app 管理服务器的运行与优雅关闭
// 收到信号或服务器失败后关闭所有服务器，再执行注册的关闭函数
package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kochabx/crawlerweb/errors"
	"github.com/kochabx/crawlerweb/log"
	"github.com/kochabx/crawlerweb/transport"
)

var (
	ErrAlreadyStarted = errors.Internal("application already started")
	ErrNilServer      = errors.BadRequest("server cannot be nil")
	ErrNilClose       = errors.BadRequest("close function cannot be nil")
	ErrClosePanic     = errors.Internal("close function panicked")
)

// Application 管理服务器和关闭函数的生命周期
type Application struct {
	name            string
	ctx             context.Context
	cancel          context.CancelFunc
	shutdownTimeout time.Duration
	closeTimeout    time.Duration
	signals         []os.Signal
	servers         []transport.Server
	closeFuncs      []CloseFunc

	mu      sync.RWMutex
	started bool
}

// CloseFunc 在所有服务器停止后执行，受 Timeout 限制
type CloseFunc struct {
	Name    string
	Fn      func(context.Context) error
	Timeout time.Duration
}

type Option func(*Application)

func WithName(name string) Option {
	return func(app *Application) {
		app.name = name
	}
}

// WithContext 设置应用的根上下文，取消 ctx 即停止应用
func WithContext(ctx context.Context) Option {
	return func(app *Application) {
		if ctx != nil {
			app.ctx, app.cancel = context.WithCancel(ctx)
		}
	}
}

func WithShutdownTimeout(timeout time.Duration) Option {
	return func(app *Application) {
		if timeout > 0 {
			app.shutdownTimeout = timeout
		}
	}
}

// WithCloseTimeout 设置关闭函数的默认超时时间
func WithCloseTimeout(timeout time.Duration) Option {
	return func(app *Application) {
		if timeout > 0 {
			app.closeTimeout = timeout
		}
	}
}

func WithSignals(signals ...os.Signal) Option {
	return func(app *Application) {
		if len(signals) > 0 {
			app.signals = append([]os.Signal(nil), signals...)
		}
	}
}

func WithServers(servers ...transport.Server) Option {
	return func(app *Application) {
		for _, server := range servers {
			if server != nil {
				app.servers = append(app.servers, server)
			}
		}
	}
}

func WithClose(name string, fn func(context.Context) error, timeout time.Duration) Option {
	return func(app *Application) {
		if fn == nil {
			log.Warn().Str("name", name).Msg("nil close function ignored")
			return
		}
		app.closeFuncs = append(app.closeFuncs, app.closeFunc(name, fn, timeout))
	}
}

func New(opts ...Option) *Application {
	app := &Application{
		name:            "crawlerweb",
		shutdownTimeout: 30 * time.Second,
		closeTimeout:    10 * time.Second,
		signals:         []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT},
	}
	app.ctx, app.cancel = context.WithCancel(context.Background())

	for _, opt := range opts {
		opt(app)
	}
	return app
}

func (app *Application) AddServer(server transport.Server) error {
	if server == nil {
		return ErrNilServer
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	if app.started {
		return ErrAlreadyStarted
	}
	app.servers = append(app.servers, server)
	return nil
}

// RegisterClose 在运行时向应用添加关闭函数
func (app *Application) RegisterClose(name string, fn func(context.Context) error, timeout time.Duration) error {
	if fn == nil {
		return ErrNilClose
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	app.closeFuncs = append(app.closeFuncs, app.closeFunc(name, fn, timeout))
	return nil
}

func (app *Application) closeFunc(name string, fn func(context.Context) error, timeout time.Duration) CloseFunc {
	if timeout <= 0 {
		timeout = app.closeTimeout
	}
	return CloseFunc{Name: name, Fn: fn, Timeout: timeout}
}

// Start 启动所有服务器并阻塞直到收到信号、调用 Stop、根上下文结束或某个服务器失败
// 之后关闭服务器并执行关闭函数，服务器的错误会被返回
func (app *Application) Start() error {
	app.mu.Lock()
	if app.started {
		app.mu.Unlock()
		return ErrAlreadyStarted
	}
	app.started = true
	servers := append([]transport.Server(nil), app.servers...)
	signals := append([]os.Signal(nil), app.signals...)
	app.mu.Unlock()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, signals...)
	defer signal.Stop(sigCh)

	eg, ctx := errgroup.WithContext(app.ctx)

	for _, server := range servers {
		eg.Go(func() error {
			if err := server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})

		eg.Go(func() error {
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), app.shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})
	}

	eg.Go(func() error {
		select {
		case sig := <-sigCh:
			log.Info().Str("app", app.name).Str("signal", sig.String()).Msg("received shutdown signal")
			app.cancel()
		case <-ctx.Done():
		}
		return nil
	})

	log.Info().Str("app", app.name).Int("servers", len(servers)).Msg("application started")
	err := eg.Wait()
	app.runCloseTasks()

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info().Str("app", app.name).Msg("application stopped")
	return nil
}

func (app *Application) Stop() {
	app.cancel()
}

// runCloseTasks 并发执行所有关闭函数
func (app *Application) runCloseTasks() {
	app.mu.RLock()
	closeFuncs := append([]CloseFunc(nil), app.closeFuncs...)
	app.mu.RUnlock()

	var eg errgroup.Group
	for _, cf := range closeFuncs {
		eg.Go(func() error {
			return runCloseTask(cf)
		})
	}
	if err := eg.Wait(); err != nil {
		log.Error().Err(err).Str("app", app.name).Msg("some close functions failed")
	}
}

func runCloseTask(cf CloseFunc) error {
	ctx, cancel := context.WithTimeout(context.Background(), cf.Timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("close", cf.Name).Msg("close function panicked")
				done <- ErrClosePanic
			}
		}()
		done <- cf.Fn(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Error().Err(err).Str("close", cf.Name).Msg("close function failed")
		}
		return err
	case <-ctx.Done():
		log.Warn().Str("close", cf.Name).Msg("close function timed out")
		return ctx.Err()
	}
}

// Info 应用状态信息
type Info struct {
	Name        string `json:"name"`
	Started     bool   `json:"started"`
	ServerCount int    `json:"server_count"`
	CloseCount  int    `json:"close_count"`
}

func (app *Application) Info() Info {
	app.mu.RLock()
	defer app.mu.RUnlock()

	return Info{
		Name:        app.name,
		Started:     app.started,
		ServerCount: len(app.servers),
		CloseCount:  len(app.closeFuncs),
	}
}
