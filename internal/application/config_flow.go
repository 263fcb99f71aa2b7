package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/oraad/ogero-sensors/internal/domain"
	"github.com/oraad/ogero-sensors/internal/ports"
)

const (
	StepUser          = "user"
	StepAccount       = "account"
	StepReauthConfirm = "reauth_confirm"

	FieldBase    = "base"
	FieldAccount = "account"

	ErrorAuth                     = "auth"
	ErrorConnection               = "connection"
	ErrorUnknown                  = "unknown"
	ErrorAccountAlreadyConfigured = "account_already_configured"

	ReasonReauthSuccessful = "reauth_successful"
)

type FlowResultType string

const (
	FlowResultForm        FlowResultType = "form"
	FlowResultCreateEntry FlowResultType = "create_entry"
	FlowResultAbort       FlowResultType = "abort"
)

type SelectOption struct {
	Value string
	Label string
}

// FlowResult is what a step hands back to the user interface: a form to show
// (with errors), a created entry, or an abort.
type FlowResult struct {
	Type         FlowResultType
	StepID       string
	Errors       map[string]string
	Options      []SelectOption
	Placeholders map[string]string
	Entry        *domain.ConfigEntry
	Reason       string
}

type Credentials struct {
	Username string
	Password string
}

type ConfigFlowOptions struct {
	Service *Service
	// Integration, when set, reloads an entry after reauth.
	Integration *Integration
	Portals     ports.PortalFactory
	Log         zerolog.Logger
}

// ConfigFlow drives the user -> account and reauth_confirm -> account steps
// of adding or repairing one entry. A flow is used once.
type ConfigFlow struct {
	opts ConfigFlowOptions
	log  zerolog.Logger

	credentials Credentials
	client      *Client
	reauthEntry *domain.ConfigEntry
}

func NewConfigFlow(opts ConfigFlowOptions) *ConfigFlow {
	return &ConfigFlow{
		opts: opts,
		log:  opts.Log.With().Str("component", "config_flow").Logger(),
	}
}

// StepUser shows the credentials form when input is nil, otherwise validates
// the credentials and moves to the account step.
func (f *ConfigFlow) StepUser(ctx context.Context, input *Credentials) (FlowResult, error) {
	if input == nil {
		return formResult(StepUser, nil), nil
	}

	if code := f.testCredentials(ctx, *input); code != "" {
		return formResult(StepUser, map[string]string{FieldBase: code}), nil
	}

	f.credentials = *input
	return f.StepAccount(ctx, nil)
}

func (f *ConfigFlow) StartReauth(ctx context.Context, id domain.EntryID) (FlowResult, error) {
	entry, err := f.opts.Service.LookupEntry(ctx, id)
	if err != nil {
		return FlowResult{}, err
	}

	f.reauthEntry = &entry
	f.credentials = Credentials{Username: entry.Data.Username}
	f.log.Warn().Str("entry_id", string(id)).Str("username", entry.Data.Username).Msg("re-authentication requested")

	return f.StepReauthConfirm(ctx, nil)
}

// StepReauthConfirm asks only for a new password; the username stays.
func (f *ConfigFlow) StepReauthConfirm(ctx context.Context, password *string) (FlowResult, error) {
	if f.reauthEntry == nil {
		return FlowResult{}, errors.New("reauth flow not started")
	}

	placeholders := map[string]string{"username": f.credentials.Username}
	if password == nil {
		result := formResult(StepReauthConfirm, nil)
		result.Placeholders = placeholders
		return result, nil
	}

	credentials := Credentials{Username: f.credentials.Username, Password: *password}
	if code := f.testCredentials(ctx, credentials); code != "" {
		result := formResult(StepReauthConfirm, map[string]string{FieldBase: code})
		result.Placeholders = placeholders
		return result, nil
	}

	f.credentials = credentials
	return f.StepAccount(ctx, nil)
}

// StepAccount offers the upstream accounts when serial is nil, otherwise
// creates the entry or, during reauth, updates and reloads it.
func (f *ConfigFlow) StepAccount(ctx context.Context, serial *string) (FlowResult, error) {
	if f.client == nil {
		return FlowResult{}, errors.New("account step reached without validated credentials")
	}

	if serial != nil {
		except := domain.EntryID("")
		if f.reauthEntry != nil {
			except = f.reauthEntry.ID
		}
		configured, err := f.opts.Service.IsAccountConfigured(ctx, *serial, except)
		if err != nil {
			return FlowResult{}, err
		}
		if configured {
			return f.accountForm(ctx, map[string]string{FieldAccount: ErrorAccountAlreadyConfigured})
		}

		account, err := domain.ParseAccount(*serial)
		if err != nil {
			return FlowResult{}, err
		}

		data := domain.EntryData{
			Username: f.credentials.Username,
			Password: f.credentials.Password,
			Account:  account.Serial(),
		}
		if f.reauthEntry != nil {
			return f.finishReauth(ctx, data)
		}

		entry, err := f.opts.Service.AddEntry(ctx, AddEntryCommand{Title: account.String(), Data: data})
		if err != nil {
			return FlowResult{}, fmt.Errorf("create entry: %w", err)
		}
		return FlowResult{Type: FlowResultCreateEntry, Entry: &entry}, nil
	}

	return f.accountForm(ctx, nil)
}

func (f *ConfigFlow) accountForm(ctx context.Context, errs map[string]string) (FlowResult, error) {
	accounts, err := f.client.ListAccounts(ctx, nil)
	if err != nil {
		return formResult(StepAccount, map[string]string{FieldBase: f.errorCode(err)}), nil
	}

	result := formResult(StepAccount, errs)
	result.Options = make([]SelectOption, 0, len(accounts))
	for _, account := range accounts {
		result.Options = append(result.Options, SelectOption{Value: account.Serial(), Label: account.String()})
	}
	return result, nil
}

func (f *ConfigFlow) finishReauth(ctx context.Context, data domain.EntryData) (FlowResult, error) {
	entry := *f.reauthEntry
	entry.Data = data

	updated, err := f.opts.Service.UpdateEntry(ctx, entry)
	if err != nil {
		return FlowResult{}, fmt.Errorf("update entry: %w", err)
	}

	if f.opts.Integration != nil {
		if _, err := f.opts.Integration.ReloadEntry(ctx, updated); err != nil {
			f.log.Warn().Err(err).Str("entry_id", string(updated.ID)).Msg("reload after reauth failed")
		}
	}

	return FlowResult{Type: FlowResultAbort, Reason: ReasonReauthSuccessful, Entry: &updated}, nil
}

// testCredentials logs in with a fresh session and returns a form error code,
// or "" on success.
func (f *ConfigFlow) testCredentials(ctx context.Context, credentials Credentials) string {
	client := NewClient(f.opts.Portals(credentials.Username, credentials.Password))
	if _, err := client.Login(ctx); err != nil {
		return f.errorCode(err)
	}

	f.client = client
	return ""
}

func (f *ConfigFlow) errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrAuthentication):
		f.log.Warn().Err(err).Msg("credentials rejected")
		return ErrorAuth
	case errors.Is(err, domain.ErrCommunication):
		f.log.Error().Err(err).Msg("portal unreachable")
		return ErrorConnection
	default:
		f.log.Error().Err(err).Msg("unexpected portal error")
		return ErrorUnknown
	}
}

func formResult(step string, errs map[string]string) FlowResult {
	if errs == nil {
		errs = map[string]string{}
	}
	return FlowResult{Type: FlowResultForm, StepID: step, Errors: errs}
}
