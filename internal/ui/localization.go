package ui

import "fmt"

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyChooseImage       = "choose_image"
	KeyOpenImage         = "open_image"
	KeyDropHint          = "drop_hint"
	KeyDropSubHint       = "drop_sub_hint"
	KeyFileName          = "file_name"
	KeyFileSize          = "file_size"
	KeyFileType          = "file_type"
	KeyChooseModel       = "choose_model"
	KeyPredict           = "predict"
	KeyPredicting        = "predicting"
	KeyResultHeading     = "result_heading"
	KeyNoPredictions     = "no_predictions"
	KeyEndpoint          = "endpoint"
	KeyBaseURL           = "base_url"
	KeyPredictPath       = "predict_path"
	KeyEndpointPinned    = "endpoint_pinned"
	KeySettingsSaved     = "settings_saved"
	KeyErrorTitle        = "error_title"
	KeyInvalidImageType  = "invalid_image_type"
	KeyImageTooLarge     = "image_too_large"
	KeyNoImageSelected   = "no_image_selected"
	KeyRequestInFlight   = "request_in_flight"
	KeyNetworkError      = "network_error"
	KeyHTTPError         = "http_error"
	KeyServerError       = "server_error"
	KeyMalformedResponse = "malformed_response"
	KeyUnexpectedError   = "unexpected_error"
	KeyErrorOpeningFile  = "error_opening_file"
	KeyImageLoaded       = "image_loaded"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// Format returns localized text with fmt verbs filled in
func (l *Localization) Format(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"id": "Bahasa Indonesia",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Image Predictor",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyChooseImage:       "Choose Image",
		KeyOpenImage:         "Open",
		KeyDropHint:          "Drop an image here",
		KeyDropSubHint:       "or click to browse (max 10 MB)",
		KeyFileName:          "Name",
		KeyFileSize:          "Size",
		KeyFileType:          "Type",
		KeyChooseModel:       "Model",
		KeyPredict:           "Predict",
		KeyPredicting:        "Predicting...",
		KeyResultHeading:     "Prediction results (%s)",
		KeyNoPredictions:     "The server returned no predictions",
		KeyEndpoint:          "Endpoint",
		KeyBaseURL:           "Server URL",
		KeyPredictPath:       "Predict Path",
		KeyEndpointPinned:    "Endpoint is set by the environment",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyErrorTitle:        "Error",
		KeyInvalidImageType:  "Please choose an image file (got %s)",
		KeyImageTooLarge:     "The image is too large. Maximum size is 10 MB",
		KeyNoImageSelected:   "Please choose an image first",
		KeyRequestInFlight:   "A prediction is already running",
		KeyNetworkError:      "Could not reach the prediction server: %v",
		KeyHTTPError:         "Prediction server returned HTTP %d: %s",
		KeyServerError:       "Prediction failed: %s",
		KeyMalformedResponse: "Unexpected response from server: %s",
		KeyUnexpectedError:   "An error occurred: %v",
		KeyErrorOpeningFile:  "Error opening file",
		KeyImageLoaded:       "Image loaded: %s",
	}

	// Indonesian texts
	l.texts["id"] = map[string]string{
		KeyAppTitle:          "Prediksi Gambar",
		KeySettings:          "Pengaturan",
		KeyFile:              "Berkas",
		KeyLanguage:          "Bahasa",
		KeySave:              "Simpan",
		KeyCancel:            "Batal",
		KeyChooseImage:       "Pilih Gambar",
		KeyOpenImage:         "Buka",
		KeyDropHint:          "Seret gambar ke sini",
		KeyDropSubHint:       "atau klik untuk memilih (maks 10 MB)",
		KeyFileName:          "Nama",
		KeyFileSize:          "Ukuran",
		KeyFileType:          "Tipe",
		KeyChooseModel:       "Model",
		KeyPredict:           "Prediksi",
		KeyPredicting:        "Memprediksi...",
		KeyResultHeading:     "Hasil prediksi (%s)",
		KeyNoPredictions:     "Server tidak mengembalikan prediksi",
		KeyEndpoint:          "Endpoint",
		KeyBaseURL:           "URL Server",
		KeyPredictPath:       "Path Prediksi",
		KeyEndpointPinned:    "Endpoint diatur oleh environment",
		KeySettingsSaved:     "Pengaturan berhasil disimpan!",
		KeyErrorTitle:        "Kesalahan",
		KeyInvalidImageType:  "Silakan pilih file gambar (didapat %s)",
		KeyImageTooLarge:     "Ukuran file terlalu besar. Maksimal 10MB",
		KeyNoImageSelected:   "Silakan pilih gambar terlebih dahulu",
		KeyRequestInFlight:   "Prediksi sedang berjalan",
		KeyNetworkError:      "Gagal menghubungi server prediksi: %v",
		KeyHTTPError:         "Server prediksi mengembalikan HTTP %d: %s",
		KeyServerError:       "Prediksi gagal: %s",
		KeyMalformedResponse: "Respons server tidak dikenali: %s",
		KeyUnexpectedError:   "Terjadi kesalahan: %v",
		KeyErrorOpeningFile:  "Gagal membuka file",
		KeyImageLoaded:       "Gambar dimuat: %s",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Распознавание изображений",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyChooseImage:       "Выбрать изображение",
		KeyOpenImage:         "Открыть",
		KeyDropHint:          "Перетащите изображение сюда",
		KeyDropSubHint:       "или нажмите для выбора (макс. 10 МБ)",
		KeyFileName:          "Имя",
		KeyFileSize:          "Размер",
		KeyFileType:          "Тип",
		KeyChooseModel:       "Модель",
		KeyPredict:           "Распознать",
		KeyPredicting:        "Распознавание...",
		KeyResultHeading:     "Результаты (%s)",
		KeyNoPredictions:     "Сервер не вернул предсказаний",
		KeyEndpoint:          "Адрес сервиса",
		KeyBaseURL:           "URL сервера",
		KeyPredictPath:       "Путь запроса",
		KeyEndpointPinned:    "Адрес задан переменными окружения",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyErrorTitle:        "Ошибка",
		KeyInvalidImageType:  "Выберите файл изображения (получен %s)",
		KeyImageTooLarge:     "Файл слишком большой. Максимум 10 МБ",
		KeyNoImageSelected:   "Сначала выберите изображение",
		KeyRequestInFlight:   "Распознавание уже выполняется",
		KeyNetworkError:      "Не удалось связаться с сервером: %v",
		KeyHTTPError:         "Сервер вернул HTTP %d: %s",
		KeyServerError:       "Ошибка распознавания: %s",
		KeyMalformedResponse: "Неожиданный ответ сервера: %s",
		KeyUnexpectedError:   "Произошла ошибка: %v",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
		KeyImageLoaded:       "Изображение загружено: %s",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Previsor de Imagens",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyChooseImage:       "Escolher Imagem",
		KeyOpenImage:         "Abrir",
		KeyDropHint:          "Solte uma imagem aqui",
		KeyDropSubHint:       "ou clique para procurar (máx. 10 MB)",
		KeyFileName:          "Nome",
		KeyFileSize:          "Tamanho",
		KeyFileType:          "Tipo",
		KeyChooseModel:       "Modelo",
		KeyPredict:           "Prever",
		KeyPredicting:        "Prevendo...",
		KeyResultHeading:     "Resultados da previsão (%s)",
		KeyNoPredictions:     "O servidor não retornou previsões",
		KeyEndpoint:          "Endpoint",
		KeyBaseURL:           "URL do Servidor",
		KeyPredictPath:       "Caminho de Previsão",
		KeyEndpointPinned:    "Endpoint definido pelo ambiente",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyErrorTitle:        "Erro",
		KeyInvalidImageType:  "Escolha um arquivo de imagem (recebido %s)",
		KeyImageTooLarge:     "A imagem é muito grande. Tamanho máximo 10 MB",
		KeyNoImageSelected:   "Escolha uma imagem primeiro",
		KeyRequestInFlight:   "Uma previsão já está em andamento",
		KeyNetworkError:      "Não foi possível acessar o servidor: %v",
		KeyHTTPError:         "O servidor retornou HTTP %d: %s",
		KeyServerError:       "A previsão falhou: %s",
		KeyMalformedResponse: "Resposta inesperada do servidor: %s",
		KeyUnexpectedError:   "Ocorreu um erro: %v",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
		KeyImageLoaded:       "Imagem carregada: %s",
	}
}
