package config

import (
	"sync"

	"github.com/tipline/tipline/model"
)

// Memory is the in-process copy of the runtime settings stored on the
// settings singleton. Hot paths read it instead of hitting the database;
// Refresh replays the stored row into it after every settings change.
type Memory struct {
	mu sync.RWMutex

	name            string
	defaultLanguage string

	maximumNamesize int
	maximumTextsize int
	maximumFilesize int

	wbTipTimeToLive int

	canPostponeExpiration bool
	canDeleteSubmission   bool
	canGrantPermissions   bool

	disableSubmissions bool

	allowUnencrypted bool

	submissionMinimumDelay int
	submissionMaximumTTL   int
}

// Mem is the process-wide settings snapshot. Zero until the first Refresh.
var Mem = &Memory{}

// Refresh replays the settings singleton into the snapshot and propagates
// the text size limits into the validators.
func (m *Memory) Refresh(node *model.Node) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.name = node.Name
	m.defaultLanguage = node.DefaultLanguage

	m.maximumNamesize = node.MaximumNamesize
	m.maximumTextsize = node.MaximumTextsize
	m.maximumFilesize = node.MaximumFilesize

	m.wbTipTimeToLive = node.WBTipTimeToLive

	m.canPostponeExpiration = node.CanPostponeExpiration
	m.canDeleteSubmission = node.CanDeleteSubmission
	m.canGrantPermissions = node.CanGrantPermissions

	m.disableSubmissions = node.DisableSubmissions
	m.allowUnencrypted = node.AllowUnencrypted

	m.submissionMinimumDelay = node.SubmissionMinimumDelay
	m.submissionMaximumTTL = node.SubmissionMaximumTTL

	model.SetTextLimits(node.MaximumNamesize, node.MaximumTextsize)
}

// Name returns the configured instance name.
func (m *Memory) Name() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.name
}

// DefaultLanguage returns the instance default language code.
func (m *Memory) DefaultLanguage() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultLanguage
}

// WBTipTimeToLive returns the whistleblower access retention window in days.
func (m *Memory) WBTipTimeToLive() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.wbTipTimeToLive
}

// CanPostponeExpiration returns the node-wide default for the postpone
// privilege.
func (m *Memory) CanPostponeExpiration() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.canPostponeExpiration
}

// CanDeleteSubmission returns the node-wide default for the delete
// privilege.
func (m *Memory) CanDeleteSubmission() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.canDeleteSubmission
}

// CanGrantPermissions returns the node-wide default for the grant
// privilege.
func (m *Memory) CanGrantPermissions() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.canGrantPermissions
}

// DisableSubmissions reports whether new submissions are refused.
func (m *Memory) DisableSubmissions() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.disableSubmissions
}

// MaximumFilesize returns the attachment size limit in megabytes.
func (m *Memory) MaximumFilesize() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.maximumFilesize
}
