package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	https_server "AeroComply/api/http"
	"AeroComply/internal/config"
	"AeroComply/internal/initial"
	complianceService "AeroComply/internal/modules/compliance/application/service"
	"AeroComply/internal/modules/compliance/domain/risk"
	compliancePersistence "AeroComply/internal/modules/compliance/infrastructure/persistence"
	complianceHandler "AeroComply/internal/modules/compliance/interface/http"
	"AeroComply/internal/modules/compliance/interface/scheduler"
	notificationService "AeroComply/internal/modules/notification/application/service"
	"AeroComply/internal/modules/notification/infrastructure/cache"
	"AeroComply/internal/modules/notification/infrastructure/mail"
	notificationPersistence "AeroComply/internal/modules/notification/infrastructure/persistence"
	notificationHandler "AeroComply/internal/modules/notification/interface/http"
	notificationWs "AeroComply/internal/modules/notification/interface/websocket"
	"AeroComply/pkg/util/myjwt"
	"AeroComply/pkg/ws"
	"AeroComply/pkg/zlog"

	"go.uber.org/zap"
)

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func main() {
	// 1. 加载配置
	conf := config.GetConfig()
	zlog.Init(conf.LogConfig.LogPath, conf.LogConfig.Level)
	defer func() { _ = zlog.Sync() }()

	// 2. 基础设施
	db, err := initial.NewGormDB(conf)
	if err != nil {
		zlog.Fatal("database init failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zlog.Fatal("database handle unavailable", zap.Error(err))
	}
	rdb := initial.NewRedis(conf)

	// 3. 通知模块
	hub := ws.NewHub()
	prefRepo := cache.NewPreferenceCache(
		notificationPersistence.NewPreferenceRepository(db),
		rdb,
		seconds(conf.RedisConfig.PreferenceTTLSeconds),
	)
	prefSvc := notificationService.NewPreferenceService(prefRepo)
	delivery := notificationService.NewDeliveryService(hub, notificationPersistence.NewAudienceRepository(db), prefSvc, mail.NewLogMailer())

	// 4. 合规模块
	rc := conf.RiskConfig
	classifier := risk.NewClassifier(rc.CriticalWindowDays, rc.WarningWindowDays, rc.CertificateCriticalWindowDays, rc.CertificateWarningWindowDays)
	alertRepo := compliancePersistence.NewAlertRepository(db)
	scanSvc := complianceService.NewScanService(
		compliancePersistence.NewDeadlineReaders(db),
		alertRepo,
		classifier,
		complianceService.WithDispatcher(delivery),
	)
	expirySvc := complianceService.NewExpiryService(compliancePersistence.NewDeferralRepository(db))

	issuer := conf.JwtConfig.Issuer
	if issuer == "" {
		issuer = conf.MainConfig.AppName
	}
	signer := myjwt.NewSigner(conf.JwtConfig.Key, issuer, conf.JwtConfig.ExpireHours)
	rt := conf.RealtimeConfig
	clientOpts := ws.ClientOptions{
		SendBuffer: rt.SendBuffer,
		WriteWait:  seconds(rt.WriteWaitSeconds),
		PongWait:   seconds(rt.PongWaitSeconds),
	}

	checks := map[string]func() error{"database": sqlDB.Ping}
	if rdb.IsConnected() {
		checks["redis"] = func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return rdb.Ping(ctx)
		}
	}

	engine := https_server.NewEngine(https_server.Deps{
		Conf:         conf,
		Signer:       signer,
		Hub:          hub,
		AlertH:       complianceHandler.NewAlertHandler(complianceService.NewAlertService(alertRepo, scanSvc)),
		PreferenceH:  notificationHandler.NewPreferenceHandler(prefSvc),
		BroadcastH:   notificationHandler.NewBroadcastHandler(delivery),
		WsH:          notificationWs.NewWsHandler(hub, signer, clientOpts, rt.AllowedOrigins),
		HealthChecks: checks,
	})

	// 5. 后台任务
	sched := scheduler.NewSchedulerManager(scanSvc, expirySvc, scheduler.Options{
		ScanSpec:       conf.SchedulerConfig.ScanSpec,
		ExpirySpec:     conf.SchedulerConfig.ExpirySpec,
		RunScanOnStart: conf.SchedulerConfig.RunScanOnStart,
	})
	if conf.SchedulerConfig.Enabled {
		if err := sched.Start(); err != nil {
			zlog.Fatal("scheduler start failed", zap.Error(err))
		}
	} else {
		zlog.Info("scheduler disabled")
	}

	// 6. 启动 HTTP 服务
	addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zlog.Info("server starting", zap.String("addr", addr), zap.Bool("tls", conf.TLSConfig.Enabled))
		var err error
		if conf.TLSConfig.Enabled {
			err = srv.ListenAndServeTLS(conf.TLSConfig.CertFile, conf.TLSConfig.KeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server start failed", zap.Error(err))
		}
	}()

	// 7. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("http shutdown failed", zap.Error(err))
	}
	if err := sched.Stop(ctx); err != nil {
		zlog.Error("scheduler stop failed", zap.Error(err))
	}
	if err := rdb.Close(); err != nil {
		zlog.Warn("redis close failed", zap.Error(err))
	}
	if err := sqlDB.Close(); err != nil {
		zlog.Warn("database close failed", zap.Error(err))
	}
	zlog.Info("server stopped")
}
