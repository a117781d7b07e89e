package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/domain"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the orchestrator a question",
	Long: `Sends a question through the full pipeline and prints the answer.
With no argument, reads questions line by line from stdin until EOF.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := requireAddress("orchestrator", cfg.Collaborators.Orchestrator); err != nil {
		return err
	}
	// The orchestrator may be waiting on the generation backend.
	client := &http.Client{Timeout: 150 * time.Second}

	if len(args) == 1 {
		answer, err := askOnce(client, args[0])
		if err != nil {
			return err
		}
		cmd.Println(answer)
		return nil
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	cmd.Print("> ")
	for scanner.Scan() {
		question := strings.TrimSpace(scanner.Text())
		if question != "" {
			answer, err := askOnce(client, question)
			if err != nil {
				cmd.PrintErrf("error: %v\n", err)
			} else {
				cmd.Println(answer)
			}
		}
		cmd.Print("> ")
	}
	cmd.Println()
	return scanner.Err()
}

func askOnce(client *http.Client, question string) (string, error) {
	body, err := json.Marshal(domain.AskRequest{Question: question})
	if err != nil {
		return "", err
	}

	url := strings.TrimSuffix(cfg.Collaborators.Orchestrator, "/") + "/ask"
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("contact orchestrator: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("orchestrator returned status %d", resp.StatusCode)
	}

	var out domain.AskResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode answer: %w", err)
	}
	return out.Answer, nil
}
