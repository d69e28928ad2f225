package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain"
)

const maxBodyBytes = 1 << 20

// binder decodes JSON bodies and validates them, reporting failures with
// JSON field names.
type binder struct {
	validate *validator.Validate
	trans    ut.Translator
}

func newBinder(v *validator.Validate) *binder {
	if v == nil {
		v = validator.New()
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	english := en.New()
	trans, _ := ut.New(english, english).GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(v, trans)
	return &binder{validate: v, trans: trans}
}

// decode reads r's body into dst. An empty body leaves dst unchanged when
// optional is set.
func (b *binder) decode(w http.ResponseWriter, r *http.Request, dst any, optional bool) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			if optional {
				return b.check(dst)
			}
			return domain.Invalid("request body is required")
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.Invalid("request body too large")
		}
		return domain.Invalid("invalid JSON body: %v", err)
	}
	return b.check(dst)
}

func (b *binder) check(v any) error {
	err := b.validate.Struct(v)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return domain.Invalid("invalid request: %v", err)
	}
	msgs := make([]string, 0, len(fields))
	for _, fe := range fields {
		msgs = append(msgs, fe.Translate(b.trans))
	}
	return domain.Invalid("%s", strings.Join(msgs, "; "))
}
