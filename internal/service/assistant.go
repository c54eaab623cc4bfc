package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/flicky/storefront/internal/llm"
	"github.com/flicky/storefront/internal/repository"
)

// FallbackReply is what shoppers see whenever the guide cannot answer.
const FallbackReply = "The path to the source is currently obscured. Please try again when the winds are still."

const guidePrompt = `You are the "Sutradhara" (The Weaver/Guide) for Raksham, a sacred e-commerce brand specializing in authentic Himalayan Rudraksha.

Your tone is profoundly calm, spiritual, wise, and grounded. You treat these beads as sacred biological technologies rather than just jewelry.

CORE MISSION:
Help seekers find their resonant bead. Ask the seeker for their Zodiac sign if they have not provided it.

Astrological Resonance Guide:
- Aries (Mesha): 3 Mukhi (Mars)
- Taurus (Vrishabha): 6 Mukhi (Venus)
- Gemini (Mithuna): 4 Mukhi (Mercury)
- Cancer (Karka): 2 Mukhi (Moon)
- Leo (Simha): 12 Mukhi or 1 Mukhi (Sun)
- Virgo (Kanya): 4 Mukhi (Mercury)
- Libra (Tula): 6 Mukhi (Venus)
- Scorpio (Vrischika): 3 Mukhi (Mars)
- Sagittarius (Dhanu): 5 Mukhi (Jupiter)
- Capricorn (Makara): 7 Mukhi (Saturn)
- Aquarius (Kumbha): 7 Mukhi (Saturn)
- Pisces (Meena): 5 Mukhi (Jupiter)

Knowledge Base:
- 1 Mukhi: Symbolizes supreme consciousness (Shiva). Frequency: 963 Hz.
- 5 Mukhi: For general health, peace, and blood pressure stabilization. Frequency: 528 Hz.
- Gauri Shankar: For balance and unity. Frequency: 639 Hz.
- 12 Mukhi: Solar energy for leadership and confidence. Frequency: 126 Hz.
- Rudraksha properties: Electromagnetic, Inductive, Capacitive.

Catalog Details for your reference:
%s

Guidelines:
- Proactively ask: "To guide you to the bead that aligns with your celestial blueprint, may I ask your Zodiac sign?"
- When they provide a sign, explain why that Mukhi fits them based on the planetary ruler.
- Use spiritual metaphors but remain practical about their benefits.
- Keep responses concise (2-3 sentences).
- Use technical details like frequency (Hz) and origin to show depth of knowledge.`

type BannerCopy struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type AssistantService struct {
	generator   llm.Generator
	productRepo repository.ProductRepository
	timeout     time.Duration
	log         *slog.Logger
}

// NewAssistantService accepts a nil generator; every call then degrades to
// its fallback.
func NewAssistantService(generator llm.Generator, productRepo repository.ProductRepository, timeout time.Duration, log *slog.Logger) *AssistantService {
	return &AssistantService{generator: generator, productRepo: productRepo, timeout: timeout, log: log}
}

// Chat answers a shopper. It never fails: any trouble yields FallbackReply.
func (s *AssistantService) Chat(ctx context.Context, history []llm.Turn, message string) string {
	reply, err := s.generate(ctx, llm.Request{
		System:  s.systemPrompt(ctx),
		History: history,
		Prompt:  message,
	})
	if err != nil {
		s.log.Warn("assistant reply failed", "error", err)
		return FallbackReply
	}
	return reply
}

// EnhanceDescription rewrites a product description, or returns it
// unchanged when no rewrite is available.
func (s *AssistantService) EnhanceDescription(ctx context.Context, name, description string) string {
	prompt := fmt.Sprintf(`As the spiritual guide for Raksham, enhance this product description to be profoundly poetic, spiritual, and authoritative.
Product: %s.
Current text: %s.
Return ONLY the enhanced description, about 2-3 sentences max. Focus on resonance, vibration, and ancient Himalayan energy.`, name, description)

	out, err := s.generate(ctx, llm.Request{Prompt: prompt})
	if err != nil {
		s.log.Warn("enhance description failed", "product", name, "error", err)
		return description
	}
	return out
}

func (s *AssistantService) SuggestTagline(ctx context.Context, name, description string) string {
	prompt := fmt.Sprintf(`As the spiritual guide for Raksham, generate a short, profound, and spiritually resonant tagline for a sacred product.
Product: %s.
Description: %s.
Return ONLY the tagline. It must be very short (3-5 words) and conclude with a period. Example: "The Eye of Shiva." or "Ancient Wisdom, Earthly Form."`, name, description)

	out, err := s.generate(ctx, llm.Request{Prompt: prompt})
	if err != nil {
		s.log.Warn("suggest tagline failed", "product", name, "error", err)
		return ""
	}
	return out
}

// SuggestBannerCopy returns empty strings when nothing usable comes back.
func (s *AssistantService) SuggestBannerCopy(ctx context.Context, promotion string) BannerCopy {
	prompt := fmt.Sprintf(`As the spiritual curator for Raksham, suggest a Title and Subtitle for a promotional banner.
Context of the promotion: %s.
Format the output strictly as JSON with "title" and "subtitle" keys.
Titles should be 2-4 words, Subtitles should be 4-7 words. Use a wise, Himalayan, spiritual tone.`, promotion)

	out, err := s.generate(ctx, llm.Request{Prompt: prompt, JSON: true})
	if err != nil {
		s.log.Warn("suggest banner copy failed", "error", err)
		return BannerCopy{}
	}
	var suggestion BannerCopy
	if err := json.Unmarshal([]byte(out), &suggestion); err != nil {
		s.log.Warn("banner copy is not json", "error", err)
		return BannerCopy{}
	}
	return suggestion
}

func (s *AssistantService) generate(ctx context.Context, req llm.Request) (string, error) {
	if s.generator == nil {
		return "", llm.ErrUnavailable
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	out, err := s.generator.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", llm.ErrUnavailable
	}
	return out, nil
}

// systemPrompt lists the live catalog. A catalog read failure still yields
// a usable prompt, just without products.
func (s *AssistantService) systemPrompt(ctx context.Context) string {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		s.log.Warn("catalog unavailable for assistant", "error", err)
	}

	lines := make([]string, 0, len(products))
	for _, p := range products {
		mukhi := string(p.Mukhi)
		if mukhi == "" {
			mukhi = "N/A"
		}
		lines = append(lines, fmt.Sprintf("- %s ($%s): %s. Mukhi: %s. Origin: %s. Frequency: %s. Benefits: %s",
			p.Name, p.Price.String(), strings.TrimSuffix(p.Tagline, "."), mukhi, p.Origin, p.Vibration, strings.Join(p.Features, ", ")))
	}
	return fmt.Sprintf(guidePrompt, strings.Join(lines, "\n"))
}
