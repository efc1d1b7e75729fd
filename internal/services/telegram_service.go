package services

import (
	"fmt"
	"html"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/HariSeldon343/NexioSolution-sub000/internal/models"
)

// telegramChannel delivers notification intents to users who linked a
// Telegram chat.
type telegramChannel struct {
	bot *tgbotapi.BotAPI
}

// NewTelegramChannel returns nil (channel disabled) when no token is
// configured or the bot cannot authenticate.
func NewTelegramChannel(token string) NotificationChannel {
	if token == "" {
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Printf("[notify][telegram] disabled: %v", err)
		return nil
	}
	return &telegramChannel{bot: bot}
}

func (c *telegramChannel) Name() string { return "telegram" }

func (c *telegramChannel) Deliver(intent models.NotificationIntent, recipient *models.User) error {
	if recipient.TelegramChatID == 0 {
		return nil
	}
	text := fmt.Sprintf("%s\n• <b>%s</b>\n• %s #%d",
		notificationSubject(intent.Kind),
		html.EscapeString(intent.Subject),
		intent.SubjectType, intent.SubjectID)

	msg := tgbotapi.NewMessage(recipient.TelegramChatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
