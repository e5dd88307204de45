package pagescmd

import (
	"errors"

	"github.com/goliatone/go-command/dispatcher"

	"github.com/goliatone/go-pagekit/internal/commands"
	"github.com/goliatone/go-pagekit/internal/pages"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

// HandlerSet groups the page command handlers.
type HandlerSet struct {
	SaveContent *SavePageContentHandler
	Delete      *DeletePageHandler
	Publish     *PublishPageHandler
}

type subscription interface {
	Unsubscribe()
}

// RegisterPageCommands builds the page handlers and subscribes them to the
// go-command dispatcher. The returned function removes the subscriptions.
func RegisterPageCommands(service pages.Service, provider interfaces.LoggerProvider) (*HandlerSet, func(), error) {
	if service == nil {
		return nil, nil, errors.New("page command registration: service is nil")
	}
	logger := commands.CommandLogger(provider, "pages")

	set := &HandlerSet{
		SaveContent: NewSavePageContentHandler(service, logger),
		Delete:      NewDeletePageHandler(service, logger),
		Publish:     NewPublishPageHandler(service, logger),
	}

	subs := []subscription{
		dispatcher.SubscribeCommand(set.SaveContent),
		dispatcher.SubscribeCommand(set.Delete),
		dispatcher.SubscribeCommand(set.Publish),
	}
	unsubscribe := func() {
		for _, sub := range subs {
			sub.Unsubscribe()
		}
	}
	return set, unsubscribe, nil
}
