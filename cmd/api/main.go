package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-dashboard-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ad-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/ad-dashboard-api/internal/api"
	"github.com/vfg2006/ad-dashboard-api/internal/config"
	"github.com/vfg2006/ad-dashboard-api/internal/scheduler"
	"github.com/vfg2006/ad-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/ad-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/ad-dashboard-api/internal/usecases/projects"
	"github.com/vfg2006/ad-dashboard-api/internal/usecases/provisioning"
	"github.com/vfg2006/ad-dashboard-api/internal/usecases/videos"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	projectRepo := repository.NewProjectRepository(pgConn)
	accountRepo := repository.NewFacebookAccountRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	videoRepo := repository.NewVideoRepository(pgConn)
	insightRepo := repository.NewInsightRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	metaClient := metaclient.NewClient(cfg)

	provisioner := provisioning.NewService(cfg, metaClient, accountRepo)
	projectService := projects.NewService(projectRepo, accountRepo)
	videoService := videos.NewService(metaClient, accountRepo, videoRepo)
	insightService := insighting.NewService(cfg, metaClient, accountRepo, campaignRepo, insightRepo)

	// Inicializa o agendador de sincronização de insights de campanha
	insightSyncService := scheduler.NewInsightSyncService(insightService, cfg)

	if err := insightSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de insights")
	} else {
		logrus.Info("Agendador de sincronização de insights iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		provisioner,
		projectService,
		videoService,
		insightService,
		authenticator,
		campaignRepo,
		insightSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
