package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Message is an incoming chat message.
type Message struct {
	ChatID   string
	UserID   string
	Username string
	Text     string
}

// CommandHandler is called for each incoming message; a non-empty reply is
// sent back to the message's chat.
type CommandHandler func(ctx context.Context, msg Message) string

// telegramUpdate represents a Telegram update from long polling.
type telegramUpdate struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		From *struct {
			ID        int64  `json:"id"`
			Username  string `json:"username"`
			FirstName string `json:"first_name"`
		} `json:"from"`
	} `json:"message"`
}

type updatesResponse struct {
	OK     bool             `json:"ok"`
	Result []telegramUpdate `json:"result"`
}

// PollTimeout is the long-poll wait passed to getUpdates.
var PollTimeout = 30 * time.Second

// StartPolling begins long-polling for Telegram commands. Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	offset := 0
	for {
		if ctx.Err() != nil {
			log.Info().Msg("telegram polling stopped")
			return
		}

		updates, err := t.getUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Msg("telegram polling stopped")
				return
			}
			log.Warn().Err(err).Msg("polling request failed")
			select {
			case <-ctx.Done():
			case <-time.After(5 * time.Second):
			}
			continue
		}

		for _, update := range updates {
			offset = update.UpdateID + 1
			msg, ok := toMessage(update)
			if !ok {
				continue
			}
			log.Info().Str("chat", msg.ChatID).Str("user", msg.UserID).Str("text", msg.Text).Msg("received command")
			reply := handler(ctx, msg)
			if reply == "" {
				continue
			}
			if err := t.SendTo(ctx, msg.ChatID, reply); err != nil {
				log.Error().Err(err).Str("chat", msg.ChatID).Msg("send reply")
			}
		}
	}
}

func (t *TelegramNotifier) getUpdates(ctx context.Context, offset int) ([]telegramUpdate, error) {
	apiURL := fmt.Sprintf("%s?offset=%d&timeout=%d", t.methodURL("getUpdates"), offset, int(PollTimeout.Seconds()))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create polling request: %w", err)
	}
	resp, err := t.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read polling response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("getUpdates: status %d, body: %s", resp.StatusCode, string(body))
	}
	var result updatesResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode polling response: %w", err)
	}
	return result.Result, nil
}

func toMessage(u telegramUpdate) (Message, bool) {
	if u.Message == nil {
		return Message{}, false
	}
	text := strings.TrimSpace(u.Message.Text)
	if text == "" {
		return Message{}, false
	}
	msg := Message{
		ChatID: strconv.FormatInt(u.Message.Chat.ID, 10),
		Text:   text,
	}
	if from := u.Message.From; from != nil {
		msg.UserID = strconv.FormatInt(from.ID, 10)
		msg.Username = from.Username
		if msg.Username == "" {
			msg.Username = from.FirstName
		}
	}
	return msg, true
}
