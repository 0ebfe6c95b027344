package notify

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	tele "gopkg.in/telebot.v4"
)

// DesktopSink shows a desktop notification through the fyne app.
type DesktopSink struct {
	app fyne.App
	run func(func())
}

// NewDesktopSink returns a sink that posts notifications from the fyne
// main goroutine.
func NewDesktopSink(app fyne.App) *DesktopSink {
	return &DesktopSink{app: app, run: fyne.Do}
}

func (sink *DesktopSink) Name() string { return "desktop" }

func (sink *DesktopSink) Deliver(_ context.Context, alert Alert) error {
	notification := fyne.NewNotification(alert.Title(), alert.Body())
	sink.run(func() {
		sink.app.SendNotification(notification)
	})
	return nil
}

// Player plays the alert sound; platform.Service implements it.
type Player interface {
	PlayAlert(ctx context.Context) error
}

// SoundSink plays the alert sound and waits for it to finish.
type SoundSink struct {
	player Player
}

// NewSoundSink returns a sink backed by player.
func NewSoundSink(player Player) *SoundSink {
	return &SoundSink{player: player}
}

func (sink *SoundSink) Name() string { return "sound" }

func (sink *SoundSink) Deliver(ctx context.Context, _ Alert) error {
	if err := sink.player.PlayAlert(ctx); err != nil {
		return fmt.Errorf("play alert: %w", err)
	}
	return nil
}

type messageSender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// TelegramSink sends alerts to one Telegram chat.
type TelegramSink struct {
	sender messageSender
	chat   tele.ChatID
}

// NewTelegramSink creates a send-only bot for token.
func NewTelegramSink(token string, chatID int64) (*TelegramSink, error) {
	bot, err := tele.NewBot(tele.Settings{Token: token, Offline: true})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramSink{sender: bot, chat: tele.ChatID(chatID)}, nil
}

func (sink *TelegramSink) Name() string { return "telegram" }

func (sink *TelegramSink) Deliver(ctx context.Context, alert Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	text := fmt.Sprintf("%s: %s", alert.Title(), alert.Body())
	if _, err := sink.sender.Send(sink.chat, text); err != nil {
		return fmt.Errorf("send telegram alert: %w", err)
	}
	return nil
}
