package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"meseros-cotizador/internal/api"
	"meseros-cotizador/internal/config"
	"meseros-cotizador/internal/handler"
	"meseros-cotizador/internal/models"
	"meseros-cotizador/internal/whatsapp"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(cfg.Level()).
		With().Timestamp().Logger()

	rules, err := cfg.Rules()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid business rules")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	links := whatsapp.LinkBuilder{BaseURL: cfg.WhatsAppBaseURL, Number: cfg.WhatsAppNumber}

	serveMode := len(os.Args) > 1 && os.Args[1] == "serve"

	var dispatcher handler.Dispatcher
	switch {
	case cfg.DispatchMode == config.DispatchClient:
		service, err := connectWhatsApp(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Error connecting to WhatsApp")
		}
		defer service.Disconnect()
		dispatcher = service
	case serveMode:
		// The browser opens the deep link itself; there is nothing to send
		// from the server.
	default:
		dispatcher = whatsapp.NewLinkDispatcher(links, os.Stdout, true, log)
	}

	quotes := handler.NewQuoteHandler(dispatcher, rules, log)

	if serveMode {
		serve(ctx, cfg, api.NewRouter(quotes, links), log)
		return
	}

	fmt.Println("✦ Meseros Eventos — Cotizador")
	fmt.Println("=============================")

	done := make(chan struct{})
	go func() {
		startCLI(ctx, quotes)
		close(done)
	}()

	select {
	case <-ctx.Done():
		fmt.Println("\n\nShutting down...")
	case <-done:
	}
	fmt.Println("¡Hasta luego! 👋")
}

func connectWhatsApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*whatsapp.Service, error) {
	service, err := whatsapp.NewService(ctx, &whatsapp.Config{
		DataDir:        cfg.WhatsAppDataDir,
		BusinessNumber: cfg.WhatsAppNumber,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize WhatsApp service: %w", err)
	}
	fmt.Println("Conectando a WhatsApp...")
	if err := service.Connect(ctx); err != nil {
		return nil, err
	}
	return service, nil
}

func serve(ctx context.Context, cfg *config.Config, router http.Handler, log zerolog.Logger) {
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Msg("Listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("Server closed")
		return
	}
	log.Info().Msg("Server closed")
}

func startCLI(ctx context.Context, quotes *handler.QuoteHandler) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Println("\nComandos:")
		fmt.Println("  1. Nueva cotización")
		fmt.Println("  2. Salir")
		fmt.Print("\nElige una opción (1-2): ")

		if !scanner.Scan() {
			return
		}

		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			newQuote(ctx, scanner, quotes)
		case "2":
			return
		default:
			fmt.Println("Opción inválida. Intenta de nuevo.")
		}
	}
}

func newQuote(ctx context.Context, scanner *bufio.Scanner, quotes *handler.QuoteHandler) {
	var form models.RawFormInput

	prompts := []struct {
		field  models.Field
		label  string
		target *string
	}{
		{models.FieldNombre, "Nombre completo", &form.Nombre},
		{models.FieldTelefono, "Teléfono (10 dígitos)", &form.Telefono},
		{models.FieldFecha, fmt.Sprintf("Fecha del evento (AAAA-MM-DD, desde %s)", quotes.MinDate()), &form.Fecha},
		{models.FieldLugar, "Lugar del evento", &form.Lugar},
		{models.FieldMesas, "Número de mesas", &form.Mesas},
		{models.FieldInvitados, "Número de invitados", &form.Invitados},
		{models.FieldBarra, "Personal de barra (0 si no se requiere)", &form.Barra},
		{models.FieldHoraInicio, "Hora de inicio (HH:mm)", &form.HoraInicio},
		{models.FieldHoraFin, "Hora de finalización (HH:mm)", &form.HoraFin},
	}

	for _, p := range prompts {
		fmt.Printf("%s: ", p.label)
		if !scanner.Scan() {
			return
		}
		*p.target = strings.TrimSpace(scanner.Text())

		for _, ind := range quotes.Refresh(p.field, form) {
			if ind.State == models.IndicatorShown {
				fmt.Printf("  ➜ %s\n", ind.Text)
			}
		}
	}

	q, err := quotes.Submit(ctx, form, printPreview)
	if errors.Is(err, handler.ErrInvalidQuote) {
		fmt.Println("\n❌ Revisa los siguientes campos:")
		for _, e := range q.Validation.Errors {
			fmt.Printf("  • %s: %s\n", e.Field, e.Message)
		}
		return
	}
	if err != nil {
		fmt.Printf("❌ No se pudo enviar la cotización: %v\n", err)
	}
}

func printPreview(s models.QuoteSummary) {
	fmt.Println("\n📋 Resumen de tu evento")
	fmt.Println(strings.Repeat("-", 60))
	for _, line := range s.Display() {
		fmt.Printf("%s %s: %s\n", line.Icon, line.Label, line.Value)
	}
	fmt.Printf("⌛ Duración: %s hora(s)\n", s.Duracion)
	fmt.Println(strings.Repeat("-", 60))
}
