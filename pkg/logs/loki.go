package logs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/glowandgrind/site-api/config"
)

// lokiWriter pushes each JSON log line to Loki's push API.
type lokiWriter struct {
	endpoint string
	username string
	password string
	client   *http.Client
	labels   map[string]string
}

type lokiPush struct {
	Streams []lokiStream `json:"streams"`
}

type lokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][2]string       `json:"values"`
}

func newLokiHandler(cfg *config.Config, level slog.Level) slog.Handler {
	lw := &lokiWriter{
		endpoint: strings.TrimRight(cfg.Logging.Output.Loki.Endpoint, "/") + "/loki/api/v1/push",
		username: cfg.Logging.Output.Loki.Username,
		password: cfg.Logging.Output.Loki.Password,
		client:   &http.Client{Timeout: 3 * time.Second},
		labels: map[string]string{
			"service": cfg.Observability.ServiceName,
			"env":     cfg.Server.Environment,
		},
	}
	return slog.NewJSONHandler(lw, &slog.HandlerOptions{Level: level})
}

func (lw *lokiWriter) Write(p []byte) (int, error) {
	body, err := lw.payload(p, time.Now())
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequest(http.MethodPost, lw.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if lw.username != "" {
		req.SetBasicAuth(lw.username, lw.password)
	}

	resp, err := lw.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return 0, fmt.Errorf("loki push: status %d", resp.StatusCode)
	}
	return len(p), nil
}

func (lw *lokiWriter) payload(line []byte, at time.Time) ([]byte, error) {
	return json.Marshal(lokiPush{
		Streams: []lokiStream{{
			Stream: lw.labels,
			Values: [][2]string{{
				strconv.FormatInt(at.UnixNano(), 10),
				strings.TrimRight(string(line), "\n"),
			}},
		}},
	})
}
