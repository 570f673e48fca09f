// Package i18n localizes user-facing result messages for the dashboard.
// English strings double as catalog keys; French entries are registered at init.
package i18n

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LangParam is the query parameter used to select a language.
const LangParam = "lang"

const (
	MsgClientAdded        = "Client added successfully"
	MsgClientsImported    = "%d clients imported successfully from %s"
	MsgNoValidClients     = "No valid clients found in the file"
	MsgInvalidFileType    = "Invalid file type. Please upload a CSV or Excel file."
	MsgFileTooLarge       = "File is too large. Maximum size is 5MB."
	MsgErrorReadingFile   = "Error reading file"
	MsgProjectNotFound    = "Project not found"
	MsgProjectCreated     = "Project created successfully"
	MsgPlanCreated        = "Subscription plan created successfully"
	MsgAccountSaved       = "Account settings saved successfully"
	MsgPreferencesSaved   = "Notification preferences updated"
	MsgCodeSent           = "We've sent a verification code to %s"
	MsgEmailVerified      = "Your email has been successfully verified."
	MsgInvalidCode        = "Invalid verification code"
	MsgAllMarkedRead      = "All notifications marked as read"
	MsgAPIKeyCreated      = "API key created"
	MsgAPIKeyRegenerated  = "API key regenerated"
	MsgAPIKeyRevoked      = "API key revoked"
	MsgWebhookCreated     = "Webhook created"
	MsgWebhookDeleted     = "Webhook deleted"
	MsgPaymentInitialized = "Payment initialized"
)

var supported = []language.Tag{language.English, language.French}

var matcher = language.NewMatcher(supported)

func init() {
	fr := map[string]string{
		MsgClientAdded:        "Client ajouté avec succès",
		MsgClientsImported:    "%d clients importés avec succès depuis %s",
		MsgNoValidClients:     "Aucun client valide trouvé dans le fichier",
		MsgInvalidFileType:    "Type de fichier invalide. Veuillez importer un fichier CSV ou Excel.",
		MsgFileTooLarge:       "Le fichier est trop volumineux. Taille maximale : 5 Mo.",
		MsgErrorReadingFile:   "Erreur lors de la lecture du fichier",
		MsgProjectNotFound:    "Projet introuvable",
		MsgProjectCreated:     "Projet créé avec succès",
		MsgPlanCreated:        "Forfait créé avec succès",
		MsgAccountSaved:       "Paramètres du compte enregistrés",
		MsgPreferencesSaved:   "Préférences de notification mises à jour",
		MsgCodeSent:           "Nous avons envoyé un code de vérification à %s",
		MsgEmailVerified:      "Votre adresse e-mail a été vérifiée.",
		MsgInvalidCode:        "Code de vérification invalide",
		MsgAllMarkedRead:      "Toutes les notifications ont été marquées comme lues",
		MsgAPIKeyCreated:      "Clé API créée",
		MsgAPIKeyRegenerated:  "Clé API régénérée",
		MsgAPIKeyRevoked:      "Clé API révoquée",
		MsgWebhookCreated:     "Webhook créé",
		MsgWebhookDeleted:     "Webhook supprimé",
		MsgPaymentInitialized: "Paiement initialisé",
	}
	for key, msg := range fr {
		_ = message.SetString(language.English, key, key)
		_ = message.SetString(language.French, key, msg)
	}
}

// Supported returns the languages the catalog covers.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Match maps arbitrary tags to the closest supported language.
func Match(tags ...language.Tag) language.Tag {
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}

// ResolveTag picks the language from ?lang first, then Accept-Language.
func ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return language.English
	}
	if v := strings.TrimSpace(r.URL.Query().Get(LangParam)); v != "" {
		if tag, err := language.Parse(v); err == nil {
			return Match(tag)
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			return Match(tags...)
		}
	}
	return language.English
}

// Printer returns a message printer for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// T formats key in the request's language.
func T(c *gin.Context, key string, args ...interface{}) string {
	return Printer(ResolveTag(c.Request)).Sprintf(key, args...)
}
