// Package i18n translates UI strings. English strings are the keys.
package i18n

import (
	"log"
	"os"
	"strings"
	"sync"

	"github.com/jeandeaual/go-locale"
)

// LangEnv overrides the detected language.
const LangEnv = "FOCUSFLOW_LANG"

var (
	mu   sync.RWMutex
	lang = "en"
)

var supported = []string{"en", "pt", "es", "ru"}

var translations = map[string]map[string]string{
	"Focus": {
		"pt": "Foco",
		"es": "Enfoque",
		"ru": "Фокус",
	},
	"Record": {
		"pt": "Gravar",
		"es": "Grabar",
		"ru": "Запись",
	},
	"Deep Work": {
		"pt": "Trabalho profundo",
		"es": "Trabajo profundo",
		"ru": "Глубокая работа",
	},
	"Light Study": {
		"pt": "Estudo leve",
		"es": "Estudio ligero",
		"ru": "Лёгкая учёба",
	},
	"Creative Flow": {
		"pt": "Fluxo criativo",
		"es": "Flujo creativo",
		"ru": "Творческий поток",
	},
	"Stop": {
		"pt": "Parar",
		"es": "Parar",
		"ru": "Стоп",
	},
	"Switch camera": {
		"pt": "Trocar câmera",
		"es": "Cambiar cámara",
		"ru": "Сменить камеру",
	},
	"Camera unavailable": {
		"pt": "Câmera indisponível",
		"es": "Cámara no disponible",
		"ru": "Камера недоступна",
	},
	"Recording": {
		"pt": "Gravando",
		"es": "Grabando",
		"ru": "Идёт запись",
	},
	"Ready": {
		"pt": "Pronto",
		"es": "Listo",
		"ru": "Готово",
	},
	"Saved": {
		"pt": "Salvo",
		"es": "Guardado",
		"ru": "Сохранено",
	},
	"Session complete": {
		"pt": "Sessão concluída",
		"es": "Sesión completada",
		"ru": "Сессия завершена",
	},
	"Preferences": {
		"pt": "Preferências",
		"es": "Preferencias",
		"ru": "Настройки",
	},
	"Quit": {
		"pt": "Sair",
		"es": "Salir",
		"ru": "Выход",
	},
	"Save": {
		"pt": "Salvar",
		"es": "Guardar",
		"ru": "Сохранить",
	},
	"Cancel": {
		"pt": "Cancelar",
		"es": "Cancelar",
		"ru": "Отмена",
	},
	"%s remaining": {
		"pt": "%s restantes",
		"es": "%s restantes",
		"ru": "осталось %s",
	},
	"Status: %s": {
		"pt": "Estado: %s",
		"es": "Estado: %s",
		"ru": "Статус: %s",
	},
	"Show FocusFlow": {
		"pt": "Mostrar FocusFlow",
		"es": "Mostrar FocusFlow",
		"ru": "Показать FocusFlow",
	},
	"Start session": {
		"pt": "Iniciar sessão",
		"es": "Iniciar sesión",
		"ru": "Начать сессию",
	},
	"Stop session": {
		"pt": "Parar sessão",
		"es": "Detener sesión",
		"ru": "Остановить сессию",
	},
	"Stop recording": {
		"pt": "Parar gravação",
		"es": "Detener grabación",
		"ru": "Остановить запись",
	},
	"Retry camera": {
		"pt": "Tentar câmera novamente",
		"es": "Reintentar cámara",
		"ru": "Повторить поиск камеры",
	},
	"Saving": {
		"pt": "Salvando",
		"es": "Guardando",
		"ru": "Сохранение",
	},
	"front camera": {
		"pt": "câmera frontal",
		"es": "cámara frontal",
		"ru": "фронтальная камера",
	},
	"back camera": {
		"pt": "câmera traseira",
		"es": "cámara trasera",
		"ru": "основная камера",
	},
	"Default mode": {
		"pt": "Modo padrão",
		"es": "Modo predeterminado",
		"ru": "Режим по умолчанию",
	},
	"Feedback sounds": {
		"pt": "Sons de retorno",
		"es": "Sonidos de aviso",
		"ru": "Звуковые сигналы",
	},
	"Feedback volume": {
		"pt": "Volume dos sons",
		"es": "Volumen de avisos",
		"ru": "Громкость сигналов",
	},
	"Max recording": {
		"pt": "Gravação máxima",
		"es": "Grabación máxima",
		"ru": "Макс. запись",
	},
	"sec": {
		"pt": "s",
		"es": "s",
		"ru": "сек",
	},
	"Quality": {
		"pt": "Qualidade",
		"es": "Calidad",
		"ru": "Качество",
	},
	"Videos folder": {
		"pt": "Pasta de vídeos",
		"es": "Carpeta de vídeos",
		"ru": "Папка для видео",
	},
	"Front camera device": {
		"pt": "Dispositivo da câmera frontal",
		"es": "Dispositivo de cámara frontal",
		"ru": "Устройство фронтальной камеры",
	},
	"Back camera device": {
		"pt": "Dispositivo da câmera traseira",
		"es": "Dispositivo de cámara trasera",
		"ru": "Устройство основной камеры",
	},
	"Language": {
		"pt": "Idioma",
		"es": "Idioma",
		"ru": "Язык",
	},
	"idle": {
		"pt": "parado",
		"es": "en pausa",
		"ru": "ожидание",
	},
}

// Detect picks the language from LangEnv or the system locale.
func Detect() string {
	if forced := strings.TrimSpace(os.Getenv(LangEnv)); forced != "" {
		log.Printf("i18n: %s is set to %q", LangEnv, forced)
		return SetLang(forced)
	}

	userLocales, err := locale.GetLocales()
	if err != nil || len(userLocales) == 0 {
		log.Printf("i18n: no user locale detected, defaulting to english")
		return SetLang("en")
	}
	log.Printf("i18n: detected user locale %s", userLocales[0])
	return SetLang(userLocales[0])
}

// SetLang sets the active language from a tag such as "pt_BR" or "ru".
// Unsupported tags fall back to English. It returns the language in use.
func SetLang(tag string) string {
	chosen := "en"
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, candidate := range supported {
		if strings.HasPrefix(tag, candidate) {
			chosen = candidate
			break
		}
	}
	mu.Lock()
	lang = chosen
	mu.Unlock()
	return chosen
}

// Lang returns the active language.
func Lang() string {
	mu.RLock()
	defer mu.RUnlock()
	return lang
}

// Supported returns the selectable languages.
func Supported() []string {
	return append([]string(nil), supported...)
}

// T translates key into the active language.
func T(key string) string {
	current := Lang()
	if current == "en" {
		return key
	}
	if byLang, ok := translations[key]; ok {
		if value, ok := byLang[current]; ok {
			return value
		}
	}
	return key
}
