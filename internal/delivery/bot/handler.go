package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	maxbot "github.com/max-messenger/max-bot-api-client-go"
	"github.com/max-messenger/max-bot-api-client-go/schemes"
	"github.com/rs/zerolog"

	"choretracker/internal/chore"
	"choretracker/internal/models"
	"choretracker/internal/services"
)

const usageText = `I track your recurring chores and remind you when they are due.

Commands:
/chores - list currently tracked chores
/addchore <days> <name> - add a chore due every <days> days
/addonceoff <name> - add a one-off chore
/addcounter <name> - add a chore that only tracks the last time it was done
/done <name> - reset the timer on a chore
/deletechore <name> - stop tracking a chore`

type Handler struct {
	logger  zerolog.Logger
	tasks   services.TaskService
	alerts  services.AlertService
	adminID int64
}

func New(
	logger zerolog.Logger,
	taskService services.TaskService,
	alertService services.AlertService,
	adminID int64,
) *Handler {
	return &Handler{
		logger:  logger,
		tasks:   taskService,
		alerts:  alertService,
		adminID: adminID,
	}
}

// HandleUpdate dispatches one long-poll update from the chat platform.
func (h *Handler) HandleUpdate(ctx context.Context, api *maxbot.Api, update any) {
	upd, ok := update.(*schemes.MessageCreatedUpdate)
	if !ok {
		return
	}

	ownerID := int64(upd.Message.Sender.UserId)
	chatID := int64(upd.Message.Recipient.ChatId)
	text := strings.TrimSpace(upd.Message.Body.Text)

	h.logger.Info().
		Int64("owner_id", ownerID).
		Str("text", text).
		Msg("command received")

	reply := h.Reply(ctx, ownerID, text)
	if reply == "" {
		return
	}

	_, err := api.Messages.Send(ctx, maxbot.NewMessage().SetChat(chatID).SetText(reply))
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("owner_id", ownerID).
			Msg("failed to send reply")
	}
}

// Reply computes the response text for one command. Split out from
// HandleUpdate so command behavior is testable without the chat client.
func (h *Handler) Reply(ctx context.Context, ownerID int64, text string) string {
	command, args := splitCommand(text)

	switch command {
	case "/start", "/help":
		return usageText
	case "/chores":
		return h.listChores(ctx, ownerID)
	case "/addchore":
		return h.addRegularChore(ctx, ownerID, args)
	case "/addonceoff":
		return h.addChore(ctx, ownerID, args, models.TaskOnceOff, 0)
	case "/addcounter":
		return h.addChore(ctx, ownerID, args, models.TaskCounter, 0)
	case "/done":
		return h.completeChore(ctx, ownerID, args)
	case "/deletechore":
		return h.deleteChore(ctx, ownerID, args)
	case "/runalerts":
		return h.runAlerts(ctx, ownerID)
	default:
		return ""
	}
}

func (h *Handler) listChores(ctx context.Context, ownerID int64) string {
	tasks, err := h.tasks.ListTasksByOwner(ctx, ownerID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("owner_id", ownerID).
			Msg("failed to list chores")
		return "Something went wrong, try again later"
	}
	if len(tasks) == 0 {
		return "No chores found"
	}

	var b strings.Builder
	b.WriteString("Chores: \n")
	for _, task := range tasks {
		b.WriteString(chore.FormatListLine(task) + "\n")
	}
	return b.String()
}

func (h *Handler) addRegularChore(ctx context.Context, ownerID int64, args string) string {
	fields := strings.SplitN(args, " ", 2)
	if len(fields) < 2 {
		return "Usage: /addchore <days> <name>"
	}

	frequency, err := strconv.Atoi(fields[0])
	if err != nil || frequency < 1 {
		return "Frequency must be a positive number of days"
	}

	return h.addChore(ctx, ownerID, strings.TrimSpace(fields[1]), models.TaskRegular, frequency)
}

func (h *Handler) addChore(ctx context.Context, ownerID int64, name string, taskType models.TaskType, frequency int) string {
	if name == "" {
		return "Chore name is required"
	}

	err := h.tasks.AddTask(ctx, models.Task{
		OwnerID:       ownerID,
		Name:          name,
		Type:          taskType,
		FrequencyDays: frequency,
	})
	if err != nil {
		if errors.Is(err, services.ErrTaskAlreadyExists) {
			return "Chore already exists"
		}

		h.logger.Error().
			Err(err).
			Int64("owner_id", ownerID).
			Str("name", name).
			Msg("failed to add chore")
		return "Something went wrong, try again later"
	}
	return "Chore added"
}

func (h *Handler) completeChore(ctx context.Context, ownerID int64, name string) string {
	if name == "" {
		return "Usage: /done <name>"
	}

	err := h.tasks.CompleteTask(ctx, ownerID, name)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			return h.notFoundReply(ctx, ownerID, name)
		}

		h.logger.Error().
			Err(err).
			Int64("owner_id", ownerID).
			Str("name", name).
			Msg("failed to complete chore")
		return "Something went wrong, try again later"
	}
	return "Chore reset"
}

func (h *Handler) deleteChore(ctx context.Context, ownerID int64, name string) string {
	if name == "" {
		return "Usage: /deletechore <name>"
	}

	err := h.tasks.DeleteTask(ctx, ownerID, name)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			return h.notFoundReply(ctx, ownerID, name)
		}

		h.logger.Error().
			Err(err).
			Int64("owner_id", ownerID).
			Str("name", name).
			Msg("failed to delete chore")
		return "Something went wrong, try again later"
	}
	return "Chore deleted"
}

func (h *Handler) runAlerts(ctx context.Context, ownerID int64) string {
	if h.adminID == 0 || ownerID != h.adminID {
		h.logger.Warn().
			Int64("owner_id", ownerID).
			Msg("unauthorized runalerts command")
		return ""
	}

	err := h.alerts.RunAlertPassNow(ctx)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to run alert pass")
		return "Alert pass failed"
	}
	return "Alerts sent"
}

// notFoundReply suggests near matches by name prefix, so a typo like
// "dish" still points at "dishes".
func (h *Handler) notFoundReply(ctx context.Context, ownerID int64, name string) string {
	matches, err := h.tasks.FindTasksByNamePrefix(ctx, ownerID, name)
	if err != nil || len(matches) == 0 {
		return "Chore not found"
	}

	var b strings.Builder
	b.WriteString("Chore not found. Did you mean:\n")
	for _, task := range matches {
		b.WriteString(fmt.Sprintf("* %s\n", task.Name))
	}
	return b.String()
}

func splitCommand(text string) (command, args string) {
	fields := strings.SplitN(text, " ", 2)
	command = fields[0]
	if len(fields) == 2 {
		args = strings.TrimSpace(fields[1])
	}
	return command, args
}
