package invite

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tendant/simple-invite/pkg/account"
	"github.com/tendant/simple-invite/pkg/identity"
	"github.com/tendant/simple-invite/pkg/notification"
	"github.com/tendant/simple-invite/pkg/role"
	"github.com/tendant/simple-invite/pkg/settings"
)

// InviteBatch is one invitation submission: a set of handles invited into a
// set of roles, with an optional custom message rendered into each email.
type InviteBatch struct {
	Handles       []string
	RoleIDs       []string
	CustomMessage string
	InviterEmail  string
}

// Delivery records the outcome for a single recipient.
type Delivery struct {
	Handle string
	Email  string
	Err    error
}

// BatchResult partitions a batch into recipients whose invite email was sent
// and recipients whose delivery failed. Accounts are provisioned only for the
// Sent partition.
type BatchResult struct {
	Sent   []Delivery
	Failed []Delivery
}

type InviteService struct {
	mapper              *identity.Mapper
	settingsService     *settings.SettingsService
	roleRepository      role.RoleRepository
	provisioner         *account.ProvisionerService
	notificationManager *notification.NotificationManager
	adminEmail          string
	mailConfirmation    bool
}

// Option configures the InviteService.
type Option func(*InviteService)

func WithMapper(mapper *identity.Mapper) Option {
	return func(s *InviteService) {
		s.mapper = mapper
	}
}

func WithSettingsService(svc *settings.SettingsService) Option {
	return func(s *InviteService) {
		s.settingsService = svc
	}
}

func WithRoleRepository(repo role.RoleRepository) Option {
	return func(s *InviteService) {
		s.roleRepository = repo
	}
}

func WithProvisioner(p *account.ProvisionerService) Option {
	return func(s *InviteService) {
		s.provisioner = p
	}
}

func WithNotificationManager(nm *notification.NotificationManager) Option {
	return func(s *InviteService) {
		s.notificationManager = nm
	}
}

// WithAdminEmail sets the Reply-To address on confirmation emails.
func WithAdminEmail(email string) Option {
	return func(s *InviteService) {
		s.adminEmail = email
	}
}

// WithMailConfirmation toggles the confirmation email sent back to the
// inviter after each batch.
func WithMailConfirmation(enabled bool) Option {
	return func(s *InviteService) {
		s.mailConfirmation = enabled
	}
}

func NewInviteService(opts ...Option) *InviteService {
	svc := &InviteService{
		mapper:           identity.NewMapper(""),
		mailConfirmation: true,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// SendInvites processes one batch. Validation is all-or-nothing: a single
// invalid handle or unknown role rejects the whole batch before any email is
// sent or any account touched. Delivery is per-recipient: a failed send for
// one handle does not stop the rest, and an account is provisioned only
// after its invite email went out.
func (s *InviteService) SendInvites(ctx context.Context, batch InviteBatch) (*BatchResult, error) {
	if len(batch.Handles) == 0 {
		return nil, ErrNoHandles
	}
	var invalid []string
	for _, handle := range batch.Handles {
		if !s.mapper.IsValidHandle(handle) {
			invalid = append(invalid, handle)
		}
	}
	if len(invalid) > 0 {
		return nil, &InvalidHandlesError{Handles: invalid}
	}

	if len(batch.RoleIDs) == 0 {
		return nil, ErrNoRolesSelected
	}
	labels := make([]string, 0, len(batch.RoleIDs))
	for _, roleID := range batch.RoleIDs {
		r, err := s.roleRepository.GetRole(ctx, roleID)
		if err != nil {
			return nil, fmt.Errorf("resolving role %q: %w", roleID, err)
		}
		labels = append(labels, r.Label)
	}

	cfg, err := s.settingsService.GetSettings(ctx)
	if err != nil {
		slog.Error("Failed loading invite settings", "err", err)
		return nil, fmt.Errorf("loading invite settings: %w", err)
	}

	customMessage := batch.CustomMessage
	if customMessage == "" {
		customMessage = cfg.DefaultCustomMessage
	}

	addresses := make([]string, 0, len(batch.Handles))
	for _, handle := range batch.Handles {
		addresses = append(addresses, s.mapper.ToEmail(handle))
	}

	baseData := map[string]string{
		"RoleLabels":    strings.Join(labels, ", "),
		"RoleIDs":       strings.Join(batch.RoleIDs, ", "),
		"CustomMessage": customMessage,
		"Handles":       strings.Join(batch.Handles, ", "),
		"Addresses":     strings.Join(addresses, ", "),
	}

	inviteOverride := notification.NoticeTemplate{
		Subject: cfg.InviteSubject,
		Text:    cfg.InviteTemplate,
	}

	result := &BatchResult{Sent: []Delivery{}, Failed: []Delivery{}}
	for i, handle := range batch.Handles {
		address := addresses[i]
		data := make(map[string]string, len(baseData)+2)
		for k, v := range baseData {
			data[k] = v
		}
		data["Handle"] = handle
		data["Address"] = address

		err := s.notificationManager.SendWithTemplate(notification.UserInviteNotice, notification.EmailSystem, notification.NotificationData{
			To:      address,
			ReplyTo: batch.InviterEmail,
			Data:    data,
		}, inviteOverride)
		if err != nil {
			slog.Error("Failed sending invite email", "handle", handle, "address", address, "err", err)
			result.Failed = append(result.Failed, Delivery{Handle: handle, Email: address, Err: err})
			continue
		}

		if _, err := s.provisioner.Ensure(ctx, handle, address, batch.RoleIDs); err != nil {
			slog.Error("Failed provisioning invited account", "handle", handle, "err", err)
			return nil, fmt.Errorf("provisioning account for %q: %w", handle, err)
		}
		result.Sent = append(result.Sent, Delivery{Handle: handle, Email: address})
		slog.Info("Invite sent", "handle", handle, "address", address)
	}

	if s.mailConfirmation && batch.InviterEmail != "" {
		s.sendConfirmation(cfg, batch, baseData)
	}

	return result, nil
}

// sendConfirmation mails the batch summary back to the inviter. Confirmation
// goes out even when every invite delivery failed; a confirmation failure is
// logged and never affects the batch result.
func (s *InviteService) sendConfirmation(cfg settings.Settings, batch InviteBatch, baseData map[string]string) {
	data := make(map[string]string, len(baseData))
	for k, v := range baseData {
		data[k] = v
	}
	override := notification.NoticeTemplate{
		Subject: cfg.ConfirmationSubject,
		Text:    cfg.ConfirmationTemplate,
	}
	err := s.notificationManager.SendWithTemplate(notification.InviteConfirmationNotice, notification.EmailSystem, notification.NotificationData{
		To:      batch.InviterEmail,
		ReplyTo: s.adminEmail,
		Data:    data,
	}, override)
	if err != nil {
		slog.Error("Failed sending invite confirmation", "inviter", batch.InviterEmail, "err", err)
	}
}
