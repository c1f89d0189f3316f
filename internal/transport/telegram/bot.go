// Package telegram adapts the core to the Telegram Bot API: a long-poll
// inbound loop feeding the router, and an outbound sender implementing
// transport.Notifier.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/support-bot/internal/domain"
	"github.com/spec-kit/support-bot/internal/transport"
)

// Bot wraps the Telegram client.
type Bot struct {
	api         *tgbotapi.BotAPI
	logger      *zap.Logger
	pollTimeout int
}

// NewBot authenticates against the Bot API.
func NewBot(token string, pollTimeoutSeconds int, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	logger.Info("telegram connected", zap.String("bot", api.Self.UserName))
	return &Bot{api: api, logger: logger, pollTimeout: pollTimeoutSeconds}, nil
}

// Send delivers plain text to a numeric identity. One attempt, no retry.
func (b *Bot) Send(targetID int64, text string) error {
	msg := tgbotapi.NewMessage(targetID, text)
	_, err := b.api.Send(msg)
	return err
}

// SendWithActions delivers text with an inline action keyboard.
func (b *Bot) SendWithActions(targetID int64, text string, actions []transport.Action) error {
	msg := tgbotapi.NewMessage(targetID, text)
	if len(actions) > 0 {
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, (len(actions)+1)/2)
		for i := 0; i < len(actions); i += 2 {
			row := []tgbotapi.InlineKeyboardButton{
				tgbotapi.NewInlineKeyboardButtonData(actions[i].Label, actions[i].ActionID),
			}
			if i+1 < len(actions) {
				row = append(row, tgbotapi.NewInlineKeyboardButtonData(actions[i+1].Label, actions[i+1].ActionID))
			}
			rows = append(rows, row)
		}
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	}
	_, err := b.api.Send(msg)
	return err
}

// SendMedia forwards a stored media file by its transport file id.
func (b *Bot) SendMedia(targetID int64, kind domain.MessageKind, fileID, caption string) error {
	var msg tgbotapi.Chattable
	switch kind {
	case domain.MessageKindPhoto:
		m := tgbotapi.NewPhoto(targetID, tgbotapi.FileID(fileID))
		m.Caption = caption
		msg = m
	case domain.MessageKindVideo:
		m := tgbotapi.NewVideo(targetID, tgbotapi.FileID(fileID))
		m.Caption = caption
		msg = m
	case domain.MessageKindDocument:
		m := tgbotapi.NewDocument(targetID, tgbotapi.FileID(fileID))
		m.Caption = caption
		msg = m
	case domain.MessageKindVoice:
		m := tgbotapi.NewVoice(targetID, tgbotapi.FileID(fileID))
		m.Caption = caption
		msg = m
	default:
		return fmt.Errorf("unsupported media kind %q", kind)
	}
	_, err := b.api.Send(msg)
	return err
}

// sendActionRows delivers text with an inline keyboard whose row layout the
// caller controls. The admin menus use this to keep their grouping.
func (b *Bot) sendActionRows(targetID int64, text string, rows [][]transport.Action) error {
	msg := tgbotapi.NewMessage(targetID, text)
	msg.ReplyMarkup = inlineMarkup(rows)
	_, err := b.api.Send(msg)
	return err
}

// ackCallback stops the client-side loading spinner on an inline button.
func (b *Bot) ackCallback(callbackID string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		b.logger.Debug("callback ack failed", zap.Error(err))
	}
}

// sendWithKeyboard delivers text with a reply keyboard (menus).
func (b *Bot) sendWithKeyboard(targetID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(targetID, text)
	msg.ReplyMarkup = keyboard
	_, err := b.api.Send(msg)
	return err
}

// editWithActions rewrites an existing message in place, used by the admin
// menu navigation.
func (b *Bot) editWithActions(chatID int64, messageID int, text string, actions [][]transport.Action) error {
	markup := inlineMarkup(actions)
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, markup)
	_, err := b.api.Send(edit)
	return err
}

func inlineMarkup(rows [][]transport.Action) tgbotapi.InlineKeyboardMarkup {
	keyboard := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, action := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(action.Label, action.ActionID))
		}
		keyboard = append(keyboard, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// Run polls for updates and hands each one to the router until ctx is
// cancelled. Updates are processed serially: the router mutates core state
// through services and the single-writer discipline relies on this loop.
func (b *Bot) Run(ctx context.Context, router *Router) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = b.pollTimeout
	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("telegram polling stopped")
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				b.logger.Info("telegram updates channel closed")
				return
			}
			router.HandleUpdate(ctx, update)
		}
	}
}
