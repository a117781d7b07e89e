package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/adapters/driven/collaborator/rest"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/adapters/driving/httpapi"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/services"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/logger"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve [orchestrator|moderator|retrieval|gateway|logsink]",
	Short: "Run one of the services",
	Long: `Runs a single service. The same binary is deployed once per role; the
argument picks which role this process plays.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"orchestrator", "moderator", "retrieval", "gateway", "logsink"},
	RunE:      runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides config and PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	role := args[0]
	logger.SetName(role)

	// Every service but the sink itself ships its records to the sink.
	if cfg.Collaborators.Logsink != "" && role != "logsink" {
		logs := rest.NewLogClient(cfg.Collaborators.Logsink, nil)
		logger.SetForwarder(func(level logger.Level, message string) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			// Best effort; a dead sink must not take the service down.
			_ = logs.Log(ctx, role, level.String(), message)
		})
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler, err := handlerFor(ctx, role)
	if err != nil {
		return err
	}

	port := servePort
	if port == 0 {
		port = cfg.Port
	}
	if port == 0 {
		return errors.New("no listen port configured (set --port or PORT)")
	}

	logger.Info("%s listening on port %d", role, port)
	err = httpapi.ListenAndServe(ctx, port, handler)
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	return err
}

func handlerFor(ctx context.Context, role string) (http.Handler, error) {
	switch role {
	case "orchestrator":
		for _, c := range []struct{ name, addr string }{
			{"moderator", cfg.Collaborators.Moderator},
			{"retrieval", cfg.Collaborators.Retrieval},
			{"gateway", cfg.Collaborators.Gateway},
		} {
			if err := requireAddress(c.name, c.addr); err != nil {
				return nil, err
			}
		}
		pipeline := services.NewAskService(
			rest.NewModerationClient(cfg.Collaborators.Moderator, nil),
			rest.NewRetrievalClient(cfg.Collaborators.Retrieval, nil),
			rest.NewGenerationClient(cfg.Collaborators.Gateway, nil),
		)
		if cfg.Collaborators.Logsink != "" {
			logs := rest.NewLogClient(cfg.Collaborators.Logsink, nil)
			return httpapi.NewOrchestratorHandler(pipeline, logs), nil
		}
		return httpapi.NewOrchestratorHandler(pipeline, nil), nil

	case "moderator":
		if err := requireAddress("gateway", cfg.Collaborators.Gateway); err != nil {
			return nil, err
		}
		moderator := services.NewModerationService(rest.NewGenerationClient(cfg.Collaborators.Gateway, nil))
		return httpapi.NewModeratorHandler(moderator), nil

	case "retrieval":
		manager, err := buildIndexManager(ctx)
		if err != nil {
			return nil, err
		}
		retriever := services.NewRetrievalService(buildEmbedder(), manager, cfg.Index.TopK)
		return httpapi.NewRetrievalHandler(retriever), nil

	case "gateway":
		llm, err := buildLLM()
		if err != nil {
			return nil, err
		}
		return httpapi.NewGatewayHandler(llm), nil

	case "logsink":
		return httpapi.NewLogsinkHandler(), nil

	default:
		return nil, fmt.Errorf("unknown service %q", role)
	}
}
