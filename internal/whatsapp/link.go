package whatsapp

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"
)

const DefaultBaseURL = "https://wa.me/"

// LinkBuilder builds click-to-chat deep links for the business number
type LinkBuilder struct {
	BaseURL string
	Number  string
}

// Build returns the deep link carrying message as prefilled text. Spaces
// are encoded as %20 rather than "+". The characters !'()* are escaped too,
// which encodeURIComponent would leave alone; both decode to the same text.
func (b LinkBuilder) Build(message string) string {
	base := b.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	number := digitsOnly(b.Number)
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return base + number + "?text=" + encoded
}

// LinkDispatcher hands the message off by printing the deep link, and a QR
// code of it, for the user to open. Whether the chat is actually sent is
// outside its knowledge.
type LinkDispatcher struct {
	links LinkBuilder
	out   io.Writer
	qr    bool
	log   zerolog.Logger
}

// NewLinkDispatcher creates a dispatcher writing links to out
func NewLinkDispatcher(links LinkBuilder, out io.Writer, withQR bool, log zerolog.Logger) *LinkDispatcher {
	return &LinkDispatcher{
		links: links,
		out:   out,
		qr:    withQR,
		log:   log.With().Str("component", "WhatsAppLink").Logger(),
	}
}

// Dispatch writes the deep link for message
func (d *LinkDispatcher) Dispatch(_ context.Context, message string) error {
	link := d.links.Build(message)

	if d.qr {
		q, err := qrcode.New(link, qrcode.Low)
		if err != nil {
			// Long messages can exceed QR capacity; the link still works.
			d.log.Warn().Err(err).Int("link_length", len(link)).Msg("Could not render QR code")
		} else {
			fmt.Fprintln(d.out, "\n"+q.ToSmallString(false))
			fmt.Fprintln(d.out, "📱 Escanea el código o abre el enlace para enviar la cotización:")
		}
	}

	if _, err := fmt.Fprintln(d.out, link); err != nil {
		return fmt.Errorf("failed to write link: %w", err)
	}

	d.log.Debug().Int("link_length", len(link)).Msg("Deep link handed off")
	return nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
