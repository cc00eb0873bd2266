package http

import (
	"github.com/solacehq/solace/internal/interfaces/http/handlers"
)

type handlerSet struct {
	webhook      *handlers.WebhookHandler
	entitlement  *handlers.EntitlementHandler
	accountToken *handlers.AccountTokenHandler
	accountLink  *handlers.AccountLinkHandler
	catalog      *handlers.CatalogHandler
	quarantine   *handlers.QuarantineHandler
}

func (c *Container) wireHandlers() {
	hdlrLog := c.log.Named("handler")
	c.hdlrs = &handlerSet{
		webhook:      handlers.NewWebhookHandler(c.ucs.applyNotification, hdlrLog),
		entitlement:  handlers.NewEntitlementHandler(c.ucs.getEntitlement, hdlrLog),
		accountToken: handlers.NewAccountTokenHandler(c.ucs.issueToken, c.ucs.deactivateToken, hdlrLog),
		accountLink:  handlers.NewAccountLinkHandler(c.ucs.linkAccount, hdlrLog),
		catalog:      handlers.NewCatalogHandler(c.ucs.upsertCatalogEntry, c.ucs.listCatalogEntries, hdlrLog),
		quarantine:   handlers.NewQuarantineHandler(c.ucs.listQuarantined, c.ucs.replayEvent, hdlrLog),
	}
}
