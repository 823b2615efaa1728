package inventory

import "github.com/preppal-io/prep-pal/domain/catalog"

// Message keys.
const (
	msgFailedLoadingData     = "failedLoadingData"
	msgFailedSavingData      = "failedSavingData"
	msgFailedSavingStockData = "failedSavingStockData"
	msgFailedDeletingData    = "failedDeletingData"
	msgInvalidInput          = "invalidInput"
	msgUnnamedProduct        = "unnamedProduct"
)

var messages = map[string]catalog.Translations{
	msgFailedLoadingData: {
		"fr_CH": "Échec du chargement des données produit",
		"de_CH": "Fehler beim Laden der Produktdaten",
		"en_US": "Failed to load product data",
	},
	msgFailedSavingData: {
		"fr_CH": "Échec de l'enregistrement des données produit",
		"de_CH": "Fehler beim Speichern der Produktdaten",
		"en_US": "Failed to save product data",
	},
	msgFailedSavingStockData: {
		"fr_CH": "Échec de l'enregistrement des données de stock",
		"de_CH": "Fehler beim Speichern der Bestandsdaten",
		"en_US": "Failed to save stock data",
	},
	msgFailedDeletingData: {
		"fr_CH": "Échec de la suppression des données",
		"de_CH": "Fehler beim Löschen der Daten",
		"en_US": "Failed to delete data",
	},
	msgInvalidInput: {
		"fr_CH": "Données saisies invalides",
		"de_CH": "Ungültige Eingabe",
		"en_US": "Invalid input",
	},
	msgUnnamedProduct: {
		"fr_CH": "Produit sans nom",
		"de_CH": "Unbenanntes Produkt",
		"en_US": "Unnamed product",
	},
}

// translate returns the message for key in locale, falling back to en_US.
func translate(key, locale string) string {
	return messages[key].In(locale)
}
