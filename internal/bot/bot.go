// Package bot is the Telegram surface: the API client wrapper and the
// command dispatch loop.
package bot

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram API client. The upload timeout is carried by the
// underlying HTTP client, so large video uploads get the same deadline as
// every other call.
type Bot struct {
	api *tgbotapi.BotAPI
}

func New(token string, uploadTimeout time.Duration) (*Bot, error) {
	client := &http.Client{Timeout: uploadTimeout}

	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to telegram: %w", err)
	}

	return &Bot{api: api}, nil
}

// Username is the account name Telegram resolved for the token.
func (b *Bot) Username() string {
	return b.api.Self.UserName
}

// RegisterCommands publishes the command menu shown in chat clients.
func (b *Bot) RegisterCommands() error {
	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Starts the bot and shows a welcome message."},
		tgbotapi.BotCommand{Command: "help", Description: "Shows the help message with instructions."},
		tgbotapi.BotCommand{Command: "download", Description: "Downloads a video or segment. Usage: /download <URL> [start] [end]"},
	)

	if _, err := b.api.Request(commands); err != nil {
		return fmt.Errorf("failed to register bot commands: %w", err)
	}

	return nil
}

// SendText sends a plain message and returns its message ID.
func (b *Bot) SendText(_ context.Context, chatID int64, text string) (int, error) {
	sent, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		return 0, fmt.Errorf("failed to send message: %w", err)
	}

	return sent.MessageID, nil
}

// EditText rewrites an existing message in place.
func (b *Bot) EditText(_ context.Context, chatID int64, messageID int, text string) error {
	if _, err := b.api.Request(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		return fmt.Errorf("failed to edit message: %w", err)
	}

	return nil
}

// DeleteMessage removes a message from the chat.
func (b *Bot) DeleteMessage(_ context.Context, chatID int64, messageID int) error {
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	return nil
}

// SendVideo uploads the file at path as a streaming-capable video.
func (b *Bot) SendVideo(_ context.Context, chatID int64, path, caption string) error {
	video := tgbotapi.NewVideo(chatID, tgbotapi.FilePath(path))
	video.Caption = caption
	video.SupportsStreaming = true

	if _, err := b.api.Send(video); err != nil {
		return fmt.Errorf("failed to send video: %w", err)
	}

	return nil
}

// SendTyping shows the "uploading a video" chat action.
func (b *Bot) SendTyping(_ context.Context, chatID int64) error {
	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatUploadVideo)); err != nil {
		return fmt.Errorf("failed to send chat action: %w", err)
	}

	return nil
}
