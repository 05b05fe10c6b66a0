package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpapi "Gigbell/api/http"
	"Gigbell/internal/config"
	alertService "Gigbell/internal/modules/alert/application/service"
	alertPersistence "Gigbell/internal/modules/alert/infrastructure/persistence"
	alertHandler "Gigbell/internal/modules/alert/interface/http"
	"Gigbell/internal/modules/notification/application/service"
	"Gigbell/internal/modules/notification/domain/policy"
	"Gigbell/internal/modules/notification/domain/repository"
	"Gigbell/internal/modules/notification/infrastructure/mq/kafka"
	"Gigbell/internal/modules/notification/infrastructure/persistence"
	"Gigbell/internal/modules/notification/infrastructure/push"
	"Gigbell/internal/modules/notification/infrastructure/queue"
	"Gigbell/internal/modules/notification/infrastructure/reader"
	"Gigbell/internal/modules/notification/infrastructure/realtime"
	"Gigbell/internal/modules/notification/interface/event"
	notificationHandler "Gigbell/internal/modules/notification/interface/http"
	opsMCP "Gigbell/internal/modules/notification/interface/mcp"
	"Gigbell/internal/modules/notification/interface/scheduler"
	performanceService "Gigbell/internal/modules/performance/application/service"
	performancePersistence "Gigbell/internal/modules/performance/infrastructure/persistence"
	performanceHandler "Gigbell/internal/modules/performance/interface/http"
	userService "Gigbell/internal/modules/user/application/service"
	userPersistence "Gigbell/internal/modules/user/infrastructure/persistence"
	userHandler "Gigbell/internal/modules/user/interface/http"
	"Gigbell/pkg/redis"
	"Gigbell/pkg/util/myjwt"
	"Gigbell/pkg/ws"
	"Gigbell/pkg/zlog"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runner 随 Start 启动的后台循环
type runner struct {
	name string
	run  func(ctx context.Context) error
}

// App 组装好的进程：HTTP、调度器、推送消费者、实时广播
type App struct {
	conf *config.Config
	db   *gorm.DB
	hub  *ws.Hub

	JWT           *myjwt.Manager
	Dispatch      service.DispatchService
	Notifications service.NotificationService
	MCPServer     *server.MCPServer
	Engine        *gin.Engine

	scheduler *scheduler.SchedulerManager
	runners   []runner
	closers   []func() error
	cancel    context.CancelFunc
}

// New 只组装不启动；一次性的 CLI 命令直接用 Dispatch，不需要 Start
func New(conf *config.Config, db *gorm.DB) (*App, error) {
	a := &App{
		conf: conf,
		db:   db,
		hub:  ws.NewHub(),
		JWT:  myjwt.NewManager(conf.JwtConfig.Key, conf.JwtConfig.ExpireHours, conf.JwtConfig.Issuer),
	}
	nc := conf.NotifyConfig

	forwarder := service.NewForwarder(reader.NewRecipientReader(db), a.buildPushQueue(), a.buildBroadcaster())
	a.Dispatch = service.NewDispatchService(
		persistence.NewNotificationUnitOfWork(db),
		reader.NewEligibilityReader(db),
		reader.NewPerformanceReader(db),
		forwarder,
		service.DispatchOptions{
			Policy:       policy.New(nc.Timezone, nc.LeadDays, nc.DueHour),
			QueryTimeout: seconds(nc.QueryTimeoutSeconds),
		},
	)
	a.Notifications = service.NewNotificationService(persistence.NewNotificationRepository(db), nc.InboxLimit)

	if nc.SchedulerEnabled {
		sm, err := scheduler.NewSchedulerManager(a.Dispatch, scheduler.Options{
			DispatchSpec:   nc.DispatchSpec,
			ReconcileSpec:  nc.ReconcileSpec,
			ReconcileHours: nc.ReconcileHours,
		})
		if err != nil {
			_ = a.Close(context.Background())
			return nil, err
		}
		a.scheduler = sm
	}

	var mcpHandler http.Handler
	if conf.MCPConfig.Enabled {
		tools := opsMCP.NewOpsTools(a.Dispatch, seconds(conf.MCPConfig.ToolCallTimeoutSeconds))
		a.MCPServer = opsMCP.NewOpsServer(conf.MCPConfig.Name, conf.MCPConfig.Version, tools)
		mcpHandler = server.NewStreamableHTTPServer(a.MCPServer)
	}

	subscriptionSvc := alertService.NewSubscriptionService(alertPersistence.NewSubscriptionRepository(db))
	performanceSvc := performanceService.NewPerformanceService(
		performancePersistence.NewPerformanceUnitOfWork(db),
		performancePersistence.NewPerformanceRepository(db),
		a.Dispatch,
	)
	userSvc := userService.NewUserService(userPersistence.NewUserRepository(db))

	a.Engine = httpapi.NewRouter(httpapi.Options{
		Host:        conf.MainConfig.Host,
		Port:        conf.MainConfig.Port,
		SSLRedirect: conf.MainConfig.SSLRedirect,
	}, httpapi.Handlers{
		JWT:          a.JWT,
		Notification: notificationHandler.NewNotificationHandler(a.Notifications),
		Admin:        notificationHandler.NewAdminHandler(a.Dispatch),
		Ws:           notificationHandler.NewWsHandler(a.hub),
		Subscription: alertHandler.NewSubscriptionHandler(subscriptionSvc),
		Performance:  performanceHandler.NewPerformanceHandler(performanceSvc),
		User:         userHandler.NewUserHandler(userSvc),
		MCP:          mcpHandler,
	})
	return a, nil
}

// buildBroadcaster redis 已连接时跨实例广播，否则只投本进程的连接
func (a *App) buildBroadcaster() repository.Broadcaster {
	if !a.conf.NotifyConfig.RealtimeEnabled {
		return nil
	}
	local := realtime.NewLocalBroadcaster(a.hub)
	if !redis.IsConnected() {
		return local
	}
	rb := realtime.NewRedisBroadcaster(a.conf.RedisConfig.NotifyChannel, local)
	a.runners = append(a.runners, runner{name: "realtime-subscriber", run: rb.Run})
	return rb
}

// buildPushQueue kafka 可用时走 kafka，否则退回进程内队列
func (a *App) buildPushQueue() repository.PushQueue {
	pc := a.conf.PushConfig
	if !pc.Enabled {
		return nil
	}
	sender := push.NewExpoClient(push.ExpoConfig{
		Endpoint:        pc.Endpoint,
		AccessToken:     pc.AccessToken,
		Timeout:         seconds(pc.TimeoutSeconds),
		RatePerSecond:   pc.RatePerSecond,
		Burst:           pc.Burst,
		BreakerFailures: pc.BreakerFailures,
		BreakerOpen:     seconds(pc.BreakerOpenSecs),
	})

	if len(a.conf.KafkaConfig.Brokers) > 0 {
		q, err := a.buildKafkaQueue(sender)
		if err == nil {
			return q
		}
		zlog.Warn("kafka unavailable, fall back to in-process push queue", zap.Error(err))
	}

	nc := a.conf.NotifyConfig
	local := queue.NewLocalPushQueue(event.NewPushConsumer(nil, sender), nc.FallbackQueueSize, nc.FallbackQueueWorkers, seconds(pc.TimeoutSeconds))
	local.Start()
	a.closers = append(a.closers, func() error {
		local.Stop()
		return nil
	})
	return local
}

func (a *App) buildKafkaQueue(sender repository.PushSender) (repository.PushQueue, error) {
	kc := a.conf.KafkaConfig
	if err := kafka.EnsureTopic(kafka.TopicAdminConfig{Brokers: kc.Brokers, ClientID: kc.ClientID}, kc.PushTopic, kc.Partitions, kc.Replication); err != nil {
		return nil, fmt.Errorf("ensure topic %s: %w", kc.PushTopic, err)
	}
	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{Brokers: kc.Brokers, ClientID: kc.ClientID})
	if err != nil {
		return nil, fmt.Errorf("kafka publisher: %w", err)
	}

	if a.conf.NotifyConfig.PushWorkerEnabled {
		consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
			Brokers:  kc.Brokers,
			GroupID:  kc.ConsumerGroupID,
			Topics:   []string{kc.PushTopic},
			ClientID: kc.ClientID,
		})
		if err != nil {
			_ = publisher.Close()
			return nil, fmt.Errorf("kafka consumer: %w", err)
		}
		worker := event.NewPushConsumer(consumer, sender)
		a.runners = append(a.runners, runner{name: "push-consumer", run: worker.Run})
		a.closers = append(a.closers, consumer.Close)
	}
	a.closers = append(a.closers, publisher.Close)
	return queue.NewKafkaPushQueue(publisher, kc.PushTopic), nil
}

// Start 启动调度器和后台循环，ctx 结束或 Close 时退出
func (a *App) Start(ctx context.Context) {
	ctx, a.cancel = context.WithCancel(ctx)
	if a.scheduler != nil {
		a.scheduler.Start()
	}
	for _, r := range a.runners {
		r := r
		go func() {
			zlog.Info("background runner started", zap.String("name", r.name))
			if err := r.run(ctx); err != nil && ctx.Err() == nil {
				zlog.Error("background runner exited", zap.String("name", r.name), zap.Error(err))
			}
		}()
	}
}

// Serve 启动全部组件并阻塞到 ctx 结束，然后优雅关闭
func (a *App) Serve(ctx context.Context) error {
	a.Start(ctx)

	addr := fmt.Sprintf("%s:%d", a.conf.MainConfig.Host, a.conf.MainConfig.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		zlog.Info(fmt.Sprintf("服务器正在启动，监听地址: %s", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	zlog.Info("正在关闭服务器...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("http shutdown failed", zap.Error(err))
	}
	if err := a.Close(shutdownCtx); err != nil {
		zlog.Error("release resources failed", zap.Error(err))
	}
	zlog.Info("服务器已关闭")
	return serveErr
}

// Close 停止调度器，按创建的逆序释放资源；本地推送队列会先把已入队的消息发完
func (a *App) Close(ctx context.Context) error {
	if a.scheduler != nil {
		a.scheduler.Stop(ctx)
	}
	if a.cancel != nil {
		a.cancel()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
