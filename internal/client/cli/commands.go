package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/translingo/internal/client/client"
	"github.com/dmitrijs2005/translingo/internal/client/models"
	"github.com/dmitrijs2005/translingo/internal/client/services"
)

var loginScreen = models.Navigation{Route: models.RouteLogin}

const msgSessionBusy = "Still checking your session, try again in a moment."

// Preferences shows the default languages, or sets them from "<from> <to>".
func (a *App) Preferences(ctx context.Context, args []string) error {
	if len(args) == 0 {
		p := a.sessions.Snapshot().Preferences
		fmt.Fprintf(a.out, "Default languages: %s -> %s\n", orDash(string(p.DefaultFromLang)), orDash(string(p.DefaultToLang)))
		return nil
	}
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: prefs <from> <to>")
		return services.ErrInvalidPreferences
	}

	prefs := models.Preferences{
		DefaultFromLang: models.LanguageCode(strings.ToLower(args[0])),
		DefaultToLang:   models.LanguageCode(strings.ToLower(args[1])),
	}
	if err := a.sessions.SetPreferences(ctx, prefs); err != nil {
		fmt.Fprintln(a.out, "Could not save preferences:", err)
		return err
	}
	fmt.Fprintf(a.out, "Default languages: %s -> %s\n", prefs.DefaultFromLang, prefs.DefaultToLang)
	return nil
}

// Translate accepts an optional leading "from:to" pair followed by the text.
// Either side of the pair may be empty to use the default.
func (a *App) Translate(ctx context.Context, args []string) error {
	var from, to models.LanguageCode
	if len(args) > 1 {
		if f, t, ok := strings.Cut(args[0], ":"); ok {
			from, to = models.LanguageCode(strings.ToLower(f)), models.LanguageCode(strings.ToLower(t))
			args = args[1:]
		}
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: translate [from:to] <text>")
		return services.ErrEmptyText
	}

	if !a.sessions.Snapshot().Settled() {
		fmt.Fprintln(a.out, msgSessionBusy)
		return services.ErrSessionBusy
	}

	res, err := a.translator.Translate(ctx, strings.Join(args, " "), from, to)
	switch {
	case errors.Is(err, services.ErrSessionBusy):
		fmt.Fprintln(a.out, msgSessionBusy)
		return err
	case errors.Is(err, services.ErrGuestLimitReached):
		fmt.Fprintln(a.out, "Guest limit reached. Register or log in to keep translating.")
		a.navigate(loginScreen)
		return err
	case err != nil:
		fmt.Fprintln(a.out, "Translation failed:", err)
		return err
	}

	fmt.Fprintf(a.out, "[%s] %s\n", res.DetectedLang, res.TranslatedText)
	return nil
}

// History lists, deletes or clears the account's saved translations:
//
//	history [text|voice]
//	history delete <id>
//	history clear
func (a *App) History(ctx context.Context, args []string) error {
	var err error
	switch {
	case len(args) == 2 && args[0] == "delete":
		if err = a.history.Delete(ctx, args[1]); err == nil {
			fmt.Fprintln(a.out, "Deleted.")
		}
	case len(args) == 1 && args[0] == "clear":
		if err = a.history.Clear(ctx); err == nil {
			fmt.Fprintln(a.out, "History cleared.")
		}
	case len(args) <= 1:
		kind := models.ModalityText
		if len(args) == 1 {
			kind = models.Modality(strings.ToLower(args[0]))
		}
		err = a.listHistory(ctx, kind)
	default:
		fmt.Fprintln(a.out, "Usage: history [text|voice] | history delete <id> | history clear")
		return services.ErrUnknownModality
	}

	switch {
	case errors.Is(err, services.ErrNotSignedIn):
		fmt.Fprintln(a.out, "Log in to keep a translation history.")
		a.navigate(loginScreen)
	case errors.Is(err, services.ErrSessionBusy):
		fmt.Fprintln(a.out, msgSessionBusy)
	case err != nil:
		fmt.Fprintln(a.out, "History failed:", messageFor(err))
	}
	return err
}

func (a *App) listHistory(ctx context.Context, kind models.Modality) error {
	items, err := a.history.List(ctx, kind)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No saved translations.")
		return nil
	}
	for _, it := range items {
		fmt.Fprintf(a.out, "%s  %s>%s  %s => %s\n", it.ID, it.FromLang, it.ToLang, it.OriginalText, it.TranslatedText)
	}
	return nil
}

// Languages prints the supported languages matching the optional query.
func (a *App) Languages(ctx context.Context, args []string) error {
	langs, err := a.history.Languages(ctx, strings.Join(args, " "))
	if err != nil {
		fmt.Fprintln(a.out, "Language lookup failed:", messageFor(err))
		return err
	}
	if len(langs) == 0 {
		fmt.Fprintln(a.out, "No matching languages.")
		return nil
	}
	for _, l := range langs {
		fmt.Fprintf(a.out, "%-4s %s\n", l.Code, l.Name)
	}
	return nil
}

func (a *App) Status(ctx context.Context) error {
	snap := a.sessions.Snapshot()

	fmt.Fprintln(a.out, "State:", snap.Status)
	if snap.Session != nil {
		fmt.Fprintln(a.out, "User:", snap.Session.User.Email)
	}
	fmt.Fprintf(a.out, "Languages: %s -> %s\n", orDash(string(snap.Preferences.DefaultFromLang)), orDash(string(snap.Preferences.DefaultToLang)))
	if a.route != models.RouteNone {
		fmt.Fprintln(a.out, "Screen:", a.route)
	}

	if left, err := a.translator.Remaining(ctx); err == nil && left >= 0 {
		fmt.Fprintln(a.out, "Guest translations left:", left)
	}
	if snap.Err != "" {
		fmt.Fprintln(a.out, "Last error:", snap.Err)
	}
	return nil
}

func (a *App) ClearError() {
	a.sessions.ClearError()
}

// messageFor prefers the server's own wording.
func messageFor(err error) string {
	if msg := client.Message(err); msg != "" {
		return msg
	}
	return err.Error()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
