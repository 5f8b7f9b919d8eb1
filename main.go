package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"seo_blog_writer/config"
	"seo_blog_writer/generator"
	"seo_blog_writer/server"
)

var verbose bool

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	configPath := flag.String("config", config.DefaultPath, "path to config.json or config.yaml")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	topic := flag.String("topic", "", "blog topic (one-shot mode)")
	audience := flag.String("audience", "", "target audience")
	keywords := flag.String("keywords", "", "comma separated SEO keywords")
	tone := flag.String("tone", string(generator.DefaultTone), "tone of the post")
	words := flag.Int("words", generator.DefaultWordCount, "target word count")
	flag.BoolVar(&verbose, "v", false, "enable info logs")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	agent, err := buildAgent(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Web server mode
	if *serve {
		listen := cfg.ServerAddr
		if *addr != "" {
			listen = *addr
		}
		if err := runServer(agent, cfg, listen); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if strings.TrimSpace(*topic) == "" {
		fmt.Fprintln(os.Stderr, "--topic is required (or use --serve)")
		os.Exit(1)
	}

	req := generator.Request{
		Topic:          *topic,
		TargetAudience: *audience,
		Keywords:       splitKeywords(*keywords),
		Tone:           generator.Tone(*tone),
		WordCount:      *words,
	}

	ctx := context.Background()
	if t := cfg.GenerateTimeout.Std(); t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}
	log.Printf("[cli] generating topic=%q provider=%s", req.Topic, cfg.LLM.Provider)
	result, err := agent.Generate(ctx, req)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(result.Content)
	fmt.Fprintf(os.Stderr, "words=%d reading_time=%dmin keywords_used=%d/%d\n",
		result.Metrics.WordCount, result.Metrics.ReadingTime, result.Metrics.KeywordsUsed, len(req.Keywords))
}

func runServer(agent *generator.Agent, cfg config.Config, listen string) error {
	srv, err := server.New(agent, server.Options{
		GenerateTimeout: cfg.GenerateTimeout.Std(),
		Logger:          infoLogger(),
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              listen,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting web server on %s (provider=%s)", listen, cfg.LLM.Provider)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Printf("Shutting down on %s", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}

func buildAgent(cfg config.Config) (*generator.Agent, error) {
	llm, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}
	return generator.NewAgent(llm,
		generator.WithProvider(cfg.LLM.Provider),
		generator.WithMaxTokens(cfg.LLM.MaxTokens),
		generator.WithRetry(generator.RetryPolicy{
			MaxAttempts:  cfg.LLM.Retry.MaxAttempts,
			InitialDelay: cfg.LLM.Retry.InitialDelay.Std(),
			MaxDelay:     cfg.LLM.Retry.MaxDelay.Std(),
		}),
		generator.WithLogger(infoLogger()),
	)
}

func buildLLM(cfg config.Config) (generator.LLMClient, error) {
	settings := &generator.LLMSettings{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Timeout:  cfg.LLM.Timeout.Std(),
	}
	switch cfg.LLM.Provider {
	case "anthropic":
		llm, err := generator.NewAnthropicLLMFromConfig(settings, nil)
		if err != nil {
			return nil, fmt.Errorf("anthropic: %w (set %s or llm.api_key)", err, cfg.LLM.APIKeyEnv)
		}
		return llm, nil
	case "openai", "deepseek":
		if settings.Model == "" && cfg.LLM.Provider == "openai" {
			settings.Model = "gpt-4o"
		}
		llm, err := generator.NewOpenAILLMFromConfig(settings)
		if err != nil {
			return nil, fmt.Errorf("%s: %w (set %s or llm.api_key)", cfg.LLM.Provider, err, cfg.LLM.APIKeyEnv)
		}
		return llm, nil
	case "mock":
		return generator.MockLLM{}, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}

func infoLogger() *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "[INFO] ", log.LstdFlags)
}

func splitKeywords(s string) []string {
	var out []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
