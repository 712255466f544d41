// Package inputval validates form input structs through `validate` tags and
// turns failures into messages fit for a flash or form banner.
//
//	type createInput struct {
//	    Email string `validate:"required,email" label:"Email address"`
//	}
//	if res := inputval.Validate(in); res.HasErrors() { ... res.First() ... }
package inputval

import (
	"fmt"
	"net/mail"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/runpro9ja/adminhub/internal/app/system/auth"
	"github.com/runpro9ja/adminhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Rule    string
	Message string
}

// Result collects the failures of one Validate call, in field order.
type Result struct {
	Errors []FieldError
}

func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "".
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the string fields of the struct v (or *v). Only the first
// failing rule of each field is reported.
func Validate(v any) *Result {
	res := &Result{}
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return res
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		tag := f.Tag.Get("validate")
		if tag == "" || f.Type.Kind() != reflect.String {
			continue
		}
		label := f.Tag.Get("label")
		if label == "" {
			label = f.Name
		}
		if fe, failed := check(label, strings.TrimSpace(rv.Field(i).String()), tag); failed {
			fe.Field = f.Name
			res.Errors = append(res.Errors, fe)
		}
	}
	return res
}

func check(label, val, tag string) (FieldError, bool) {
	for _, rule := range strings.Split(tag, ",") {
		name, arg, _ := strings.Cut(strings.TrimSpace(rule), "=")
		if name != "required" && val == "" {
			continue
		}
		var msg string
		switch name {
		case "required":
			if val == "" {
				msg = label + " is required."
			}
		case "max":
			n, err := strconv.Atoi(arg)
			if err == nil && utf8.RuneCountInString(val) > n {
				msg = fmt.Sprintf("%s must be at most %d characters.", label, n)
			}
		case "email":
			if !IsValidEmail(val) {
				msg = "A valid email address is required."
			}
		case "httpurl":
			if !IsValidHTTPURL(val) {
				msg = label + " must be a valid http or https URL."
			}
		case "objectid":
			if !IsValidObjectID(val) {
				msg = label + " is not a valid id."
			}
		case "adminrole":
			if !auth.IsAdminRole(val) {
				msg = "Choose a valid role."
			}
		case "reason":
			if !models.IsDeletionReason(val) {
				msg = "Choose a reason from the list."
			}
		}
		if msg != "" {
			return FieldError{Rule: name, Message: msg}, true
		}
	}
	return FieldError{}, false
}

// IsValidEmail accepts a bare addr-spec. Display names, whitespace and
// misplaced dots are rejected.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	for _, part := range []string{local, domain} {
		if strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".") || strings.Contains(part, "..") {
			return false
		}
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Name == "" && addr.Address == s
}

// IsValidHTTPURL reports whether s is an absolute http(s) URL with a host.
func IsValidHTTPURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsValidObjectID reports whether s is a 24-hex-digit Mongo id.
func IsValidObjectID(s string) bool {
	return primitive.IsValidObjectID(strings.TrimSpace(s))
}
