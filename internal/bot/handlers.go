package bot

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/clipfetch/clipfetch_bot/internal/job"
	"github.com/clipfetch/clipfetch_bot/internal/logctx"
	"github.com/clipfetch/clipfetch_bot/internal/request"
)

const updatePollTimeout = 30

// Handler dispatches chat commands. Each accepted download runs in its own
// goroutine so one slow job never blocks the update loop.
type Handler struct {
	bot    *Bot
	runner *job.Runner
}

func NewHandler(bot *Bot, runner *job.Runner) *Handler {
	return &Handler{bot: bot, runner: runner}
}

// Run consumes updates until the context is cancelled.
func (h *Handler) Run(ctx context.Context) error {
	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = updatePollTimeout

	updates := h.bot.api.GetUpdatesChan(updateCfg)

	for {
		select {
		case <-ctx.Done():
			h.bot.api.StopReceivingUpdates()

			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}

			h.handle(ctx, update)
		}
	}
}

func (h *Handler) handle(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || !update.Message.IsCommand() {
		return
	}

	chatID := update.Message.Chat.ID
	ctx = logctx.With(ctx, "chat_id", chatID, "command", update.Message.Command())
	logger := logctx.LoggerFromContext(ctx)

	switch update.Message.Command() {
	case "start":
		h.reply(ctx, chatID, welcomeText)
	case "help":
		h.reply(ctx, chatID, helpText)
	case "download":
		h.handleDownload(ctx, chatID, update.Message.CommandArguments())
	default:
		logger.Debug("ignoring unknown command")
	}
}

func (h *Handler) handleDownload(ctx context.Context, chatID int64, rawArgs string) {
	req, warnings, err := request.Parse(strings.Fields(rawArgs))
	if err != nil {
		switch {
		case errors.Is(err, request.ErrMissingURL):
			h.reply(ctx, chatID, usageText)
		case errors.Is(err, request.ErrInvalidURL):
			h.reply(ctx, chatID, invalidURLText)
		default:
			h.reply(ctx, chatID, usageText)
		}

		return
	}

	// Malformed timestamp tokens degrade the request, never reject it.
	for _, warning := range warnings {
		h.reply(ctx, chatID, warning.Text)
	}

	go h.runner.Run(ctx, chatID, req)
}

func (h *Handler) reply(ctx context.Context, chatID int64, text string) {
	if _, err := h.bot.SendText(ctx, chatID, text); err != nil {
		logctx.LoggerFromContext(ctx).Error("failed to send reply", "chat_id", chatID, "err", err)
	}
}
