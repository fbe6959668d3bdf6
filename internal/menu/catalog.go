package menu

import (
	"strings"

	"github.com/nomarddesk/moenry-bot/core/telegram/format"
)

// Links holds the external references shown on the screens.
type Links struct {
	WebsiteURL    string
	ChannelURL    string
	UpdatesURL    string
	WaitlistURL   string
	WaitlistEmail string
}

// DefaultLinks returns the placeholder values used when none are configured.
func DefaultLinks() Links {
	return Links{
		WebsiteURL:    "https://your-website.com",
		ChannelURL:    "https://t.me/your_channel",
		UpdatesURL:    "https://t.me/your_updates_channel",
		WaitlistURL:   "https://your-website.com/waitlist",
		WaitlistEmail: "waitlist@yourai.com",
	}
}

// withDefaults fills empty fields from DefaultLinks.
func (l Links) withDefaults() Links {
	def := DefaultLinks()
	pick := func(v, fallback string) string {
		if strings.TrimSpace(v) == "" {
			return fallback
		}
		return strings.TrimSpace(v)
	}
	return Links{
		WebsiteURL:    pick(l.WebsiteURL, def.WebsiteURL),
		ChannelURL:    pick(l.ChannelURL, def.ChannelURL),
		UpdatesURL:    pick(l.UpdatesURL, def.UpdatesURL),
		WaitlistURL:   pick(l.WaitlistURL, def.WaitlistURL),
		WaitlistEmail: pick(l.WaitlistEmail, def.WaitlistEmail),
	}
}

const startText = "🚀 *We are launching our Super AI Intelligence!*\n\n" +
	"This AI is as advanced as ChatGPT, Gemini, and DeepSeek, " +
	"designed to assist people with various tasks.\n\n" +
	"Join the future of AI learning and experience next-generation " +
	"artificial intelligence at your fingertips!\n\n" +
	"✨ *Features:*\n" +
	"• Advanced natural language understanding\n" +
	"• Multi-task assistance\n" +
	"• Continuous learning capabilities\n" +
	"• 24/7 availability"

const learnMoreText = "🤖 *About Our Super AI*\n\n" +
	"Our AI system combines the best features of leading AI models:\n\n" +
	"🔹 *Advanced Capabilities:*\n" +
	"• Natural conversations\n" +
	"• Problem solving\n" +
	"• Creative writing\n" +
	"• Code generation\n" +
	"• Research assistance\n\n" +
	"🔹 *Coming Soon:*\n" +
	"• Image generation\n" +
	"• Voice interactions\n" +
	"• File processing\n" +
	"• Custom AI agents\n\n" +
	"*Stay tuned for our official launch!*"

const waitlistTemplate = "🎉 *Join Our Exclusive Waitlist!*\n\n" +
	"Be among the first to experience our Super AI when it launches.\n\n" +
	"Early access members will get:\n" +
	"• Priority access to new features\n" +
	"• Special launch bonuses\n" +
	"• Direct support from our team\n\n" +
	"Please send your email to: *{email}*\n" +
	"or visit our website to register!"

// Catalog is the immutable set of menu screens. It is safe for concurrent use;
// callers must not modify the returned screens.
type Catalog struct {
	screens map[ScreenID]Screen
}

// NewCatalog renders all screens once from links. Empty links fall back to defaults.
func NewCatalog(links Links) *Catalog {
	links = links.withDefaults()

	email, err := format.EscapeMarkdown(links.WaitlistEmail, format.MarkdownV1)
	if err != nil {
		email = links.WaitlistEmail
	}

	return &Catalog{screens: map[ScreenID]Screen{
		ScreenStart: {
			ID:   ScreenStart,
			Text: startText,
			Rows: column(
				navigate("📚 Learn More", ActionLearnMore),
				link("🌐 Visit Website", links.WebsiteURL),
				link("📱 Join Channel", links.ChannelURL),
			),
		},
		ScreenLearnMore: {
			ID:   ScreenLearnMore,
			Text: learnMoreText,
			Rows: column(
				navigate("🚀 Join Waitlist", ActionWaitlist),
				link("📢 Updates", links.UpdatesURL),
				navigate("← Back", ActionBack),
			),
		},
		ScreenWaitlist: {
			ID:   ScreenWaitlist,
			Text: strings.ReplaceAll(waitlistTemplate, "{email}", email),
			Rows: column(
				link("🌐 Register Online", links.WaitlistURL),
				navigate("← Back", ActionLearnMore),
			),
		},
	}}
}

// Start returns the screen sent in reply to /start.
func (c *Catalog) Start() Screen {
	return c.screens[ScreenStart]
}

// Screen returns the screen by id.
func (c *Catalog) Screen(id ScreenID) (Screen, bool) {
	s, ok := c.screens[id]
	return s, ok
}

// Resolve returns the screen an action navigates to.
func (c *Catalog) Resolve(a Action) (Screen, bool) {
	id, ok := a.Target()
	if !ok {
		return Screen{}, false
	}
	return c.Screen(id)
}
