package hjarta_test

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/fx"

	hjarta "github.com/0xalexb/hjarta-config"
	"github.com/0xalexb/hjarta-config/config"
	filefetcher "github.com/0xalexb/hjarta-config/config/fetcher/file"
	yamlparser "github.com/0xalexb/hjarta-config/config/parser/yaml"
	"github.com/0xalexb/hjarta-config/config/source/document"
	"github.com/0xalexb/hjarta-config/config/source/memory"
)

// ServerConfig represents application server configuration.
// It implements both Defaulter and Validator interfaces from the config package.
type ServerConfig struct {
	Host    string
	Port    int `validate:"min=1,max=65535"`
	Timeout time.Duration
}

// SetDefaults sets default values for the configuration.
func (c *ServerConfig) SetDefaults() bool {
	changed := false

	if c.Host == "" {
		c.Host = "localhost"
		changed = true
	}

	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
		changed = true
	}

	return changed
}

// Validate validates the configuration.
func (c *ServerConfig) Validate() error {
	if c.Timeout < time.Second {
		return errors.New("timeout must be at least one second")
	}

	return nil
}

// ServerService is a service that depends on config.
type ServerService struct {
	Config *ServerConfig
}

// Address returns the server address from config.
func (s *ServerService) Address() string {
	return fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
}

// Example_layeredConfiguration layers an in-memory override on top of a YAML
// file and binds the merged "Server" section into a typed struct.
func Example_layeredConfiguration() {
	fetcher, err := filefetcher.NewFetcher("testdata/settings.yaml")()
	if err != nil {
		fmt.Printf("Error creating fetcher: %v\n", err)

		return
	}

	source, err := document.New(fetcher, yamlparser.NewParser())
	if err != nil {
		fmt.Printf("Error creating source: %v\n", err)

		return
	}

	fileProvider, err := config.NewProvider("settings.yaml", source)
	if err != nil {
		fmt.Printf("Error creating provider: %v\n", err)

		return
	}

	overrides, err := config.NewProvider("overrides", memory.New(map[string]string{
		"Server:Port": "9443",
	}))
	if err != nil {
		fmt.Printf("Error creating provider: %v\n", err)

		return
	}

	var (
		service *ServerService
		root    *config.Root
	)

	app := hjarta.NewApp(
		hjarta.WithLogLevel("error"),
		hjarta.WithConfiguration(fileProvider, overrides),
		hjarta.WithModules(
			fx.Provide(config.Provide[ServerConfig]("Server")),
			fx.Provide(func(cfg *ServerConfig) *ServerService {
				return &ServerService{Config: cfg}
			}),
			fx.Invoke(func(s *ServerService, r *config.Root) {
				service = s
				root = r
			}),
		),
	)

	err = app.Start()
	if err != nil {
		fmt.Printf("Error starting app: %v\n", err)

		return
	}

	defer func() { _ = app.Stop() }()

	channel, _ := root.Value("Notifications:Email:Channels:1")

	fmt.Printf("Server address: %s\n", service.Address())
	fmt.Printf("Timeout: %s\n", service.Config.Timeout)
	fmt.Printf("Second channel: %s\n", channel)
	// Output:
	// Server address: api.example.com:9443
	// Timeout: 30s
	// Second channel: digest
}
