package ntfy

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const defaultServer = "https://ntfy.sh"

type Config struct {
	Server string `yaml:"server" envconfig:"NTFY_SERVER"`
	Topic  string `yaml:"topic" envconfig:"NTFY_TOPIC"`
}

func (c Config) Enabled() bool {
	return c.Topic != ""
}

type Notify struct {
	url    string
	client *http.Client
}

func New(config Config, client *http.Client) *Notify {
	server := strings.TrimSuffix(config.Server, "/")
	if server == "" {
		server = defaultServer
	}

	if client == nil {
		client = http.DefaultClient
	}

	return &Notify{url: fmt.Sprintf("%s/%s", server, config.Topic), client: client}
}

func (n *Notify) Send(ctx context.Context, title string, message string, tags ...string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, strings.NewReader(message))
	if err != nil {
		return err
	}

	req.Header.Set("Title", title)
	if len(tags) > 0 {
		req.Header.Set("Tags", strings.Join(tags, ","))
	}
	req.Header.Set("Priority", "1")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ntfy failed: %d", resp.StatusCode)
	}

	return nil
}
