package i18n

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

// NewTranslations builds the message bundle with the embedded English and
// Spanish messages plus any active.*.toml files found under localesPath.
func NewTranslations(defaultLang string, localesPath string) (*Translations, error) {
	if defaultLang == "" {
		return nil, errors.New("language cannot be empty")
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.MustParseMessageFileBytes([]byte(defaultMessages), "default.en.toml")
	bundle.MustParseMessageFileBytes([]byte(spanishMessages), "default.es.toml")

	if localesPath == "" {
		localesPath = "locales"
	}

	files, err := filepath.Glob(filepath.Join(localesPath, "active.*.toml"))
	if err != nil {
		return nil, fmt.Errorf("error reading locales: %w", err)
	}

	for _, file := range files {
		if _, err := bundle.LoadMessageFile(file); err != nil {
			return nil, fmt.Errorf("error loading locale file %s: %w", file, err)
		}
	}

	localize := i18n.NewLocalizer(bundle, defaultLang)

	return &Translations{
		bundle:   bundle,
		localize: localize,
	}, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

func (t *Translations) GetMessage(messageID string, count int, templateData map[string]interface{}) string {
	localized, err := t.localize.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID: messageID,
		},
		PluralCount:  count,
		TemplateData: templateData,
	})
	if err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}

var defaultMessages = `
	[app_usage]
	other = "Import a JSON bug report into a GitHub issue tracker"

	[app_description]
	other = "issue-importer validates a locally-authored JSON bug report, creates a GitHub issue from it and attaches its comments in order."

	[help_command_usage]
	other = "Show help"

	[factory_already_registered]
	other = "Factory '{{.FactoryName}}' is already registered"

	[import.command_usage]
	other = "Validate an issue file and import it into the tracker"

	[import.flag_skip_labels]
	other = "Skip validating labels against the repository's label set"

	[import.flag_repo]
	other = "Target repository (owner/name), overriding the configured one"

	[import.missing_file]
	other = "An issue file path is required"

	[import.repo_not_configured]
	other = "No repository configured. Set one with 'issue-importer config set --repo owner/name' or pass --repo"

	[labels.command_usage]
	other = "Print all labels in use on the repository"

	[labels.fetching]
	other = "Fetching labels..."

	[labels.all_labels]
	other = "All labels: {{.Labels}}"

	[config.command_usage]
	other = "Show or change the stored configuration"

	[config.show_usage]
	other = "Show the current configuration"

	[config.set_usage]
	other = "Change configuration values"

	[config.flag_repo]
	other = "Repository to import into (owner/name)"

	[config.flag_token]
	other = "GitHub access token used for writes"

	[config.flag_lang]
	other = "UI language (en, es)"

	[config.current]
	other = "Current configuration"

	[config.saved]
	other = "Configuration saved"

	[config.nothing_to_set]
	other = "Nothing to change. Pass --repo, --token or --lang"

	[config.token_not_set]
	other = "(not set)"

	[validation.failed]
	other = "JSON Schema validation failed:"

	[validation.unknown_label]
	other = "You attempted to create an issue with an unknown label. GitHub ignores unknown labels when creating issues. Open an issue on the target repository if you feel like this label should be added to its label set. To ignore this type of validation and proceed, try again using the --skip-labels option."

	[issue.imported]
	other = "{{.URL}} successfully imported"

	[issue.create_failed]
	other = "Something went wrong. Response: {{.Code}}. See developer.github.com/v3/ for troubleshooting."

	[comments.importing]
	other = "Importing comments..."

	[comments.created]
	other = "{{.URL}} created"

	[comments.done]
	other = "All done. 🍪"

	[error.read_issue_file]
	other = "Could not read the issue file {{.Path}}"

	[error.get_labels]
	other = "Error fetching the repository labels"

	[error.create_issue]
	other = "Error creating the issue"

	[error.create_comment]
	other = "Error creating the comment on issue {{.Number}}"
	`

var spanishMessages = `
	[app_usage]
	other = "Importa un reporte de bug en JSON a un issue tracker de GitHub"

	[app_description]
	other = "issue-importer valida un reporte de bug escrito localmente en JSON, crea un issue de GitHub a partir de él y agrega sus comentarios en orden."

	[help_command_usage]
	other = "Mostrar la ayuda"

	[factory_already_registered]
	other = "La factory '{{.FactoryName}}' ya está registrada"

	[import.command_usage]
	other = "Validar un archivo de issue e importarlo al tracker"

	[import.flag_skip_labels]
	other = "Omitir la validación de etiquetas contra las etiquetas del repositorio"

	[import.flag_repo]
	other = "Repositorio destino (owner/name), reemplaza al configurado"

	[import.missing_file]
	other = "Se necesita la ruta de un archivo de issue"

	[import.repo_not_configured]
	other = "No hay repositorio configurado. Definí uno con 'issue-importer config set --repo owner/name' o pasá --repo"

	[labels.command_usage]
	other = "Mostrar todas las etiquetas en uso en el repositorio"

	[labels.fetching]
	other = "Obteniendo etiquetas..."

	[labels.all_labels]
	other = "Todas las etiquetas: {{.Labels}}"

	[config.command_usage]
	other = "Mostrar o cambiar la configuración guardada"

	[config.show_usage]
	other = "Mostrar la configuración actual"

	[config.set_usage]
	other = "Cambiar valores de configuración"

	[config.flag_repo]
	other = "Repositorio donde importar (owner/name)"

	[config.flag_token]
	other = "Token de acceso de GitHub para escrituras"

	[config.flag_lang]
	other = "Idioma de la interfaz (en, es)"

	[config.current]
	other = "Configuración actual"

	[config.saved]
	other = "Configuración guardada"

	[config.nothing_to_set]
	other = "Nada que cambiar. Pasá --repo, --token o --lang"

	[config.token_not_set]
	other = "(sin definir)"

	[validation.failed]
	other = "La validación del JSON Schema falló:"

	[validation.unknown_label]
	other = "Intentaste crear un issue con una etiqueta desconocida. GitHub ignora las etiquetas desconocidas al crear issues. Abrí un issue en el repositorio destino si creés que esta etiqueta debería agregarse a su conjunto de etiquetas. Para omitir este tipo de validación y continuar, probá de nuevo con la opción --skip-labels."

	[issue.imported]
	other = "{{.URL}} importado correctamente"

	[issue.create_failed]
	other = "Algo salió mal. Respuesta: {{.Code}}. Mirá developer.github.com/v3/ para resolver el problema."

	[comments.importing]
	other = "Importando comentarios..."

	[comments.created]
	other = "{{.URL}} creado"

	[comments.done]
	other = "Listo. 🍪"

	[error.read_issue_file]
	other = "No se pudo leer el archivo de issue {{.Path}}"

	[error.get_labels]
	other = "Error al obtener las etiquetas del repositorio"

	[error.create_issue]
	other = "Error al crear el issue"

	[error.create_comment]
	other = "Error al crear el comentario en el issue {{.Number}}"
	`
