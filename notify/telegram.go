package notify

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"

	"github.com/zoe5466/Gudiee-sub001/types"
	"github.com/zoe5466/Gudiee-sub001/wizard"
)

// Telegram forwards notices to a chat through the Bot API.
type Telegram struct {
	bot    *bot.Bot
	chatID int64
}

// NewTelegram creates a Telegram notifier. The bot token is not verified
// until the first message is sent.
func NewTelegram(ref types.TelegramRef, opts ...bot.Option) (*Telegram, error) {
	if ref.BotToken == "" || ref.ChatID == 0 {
		return nil, fmt.Errorf("telegram notifier: bot_token and chat_id are required")
	}
	opts = append([]bot.Option{bot.WithSkipGetMe()}, opts...)
	b, err := bot.New(ref.BotToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}
	return &Telegram{bot: b, chatID: ref.ChatID}, nil
}

// Notify implements wizard.Notifier.
func (t *Telegram) Notify(ctx context.Context, n wizard.Notice) error {
	text := n.Title
	if n.Body != "" {
		text += "\n" + n.Body
	}
	_, err := t.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: t.chatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}
	return nil
}
