package ui

import (
	"errors"

	"github.com/dmitrijs2005/adboard/internal/common"
	"github.com/dmitrijs2005/adboard/internal/models"
)

// Notice icons.
const (
	IconSuccess = "success"
	IconWarning = "warning"
	IconError   = "error"
	IconInfo    = "info"
)

// Notice is a message shown to the user after an operation.
type Notice struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

var (
	NoticeSignedUp    = Notice{Icon: IconSuccess, Title: "Signup Successful!", Text: "Now sign in."}
	NoticeLoggedOut   = Notice{Icon: IconInfo, Title: "Logged Out", Text: "You have been logged out."}
	NoticeAdPublished = Notice{Icon: IconSuccess, Title: "Ad Published!", Text: "Your ad has been published successfully!"}
	NoticeAuthNeeded  = Notice{Icon: IconWarning, Title: "Authentication Required", Text: "Please login to post an ad!"}
)

// NoticeSignedIn greets the user by full name.
func NoticeSignedIn(fullName string) Notice {
	return Notice{Icon: IconSuccess, Title: "Welcome Back!", Text: "Hello " + fullName}
}

var fieldLabels = map[string]string{
	"firstName":   "first name",
	"lastName":    "last name",
	"email":       "email",
	"password":    "password",
	"category":    "category",
	"title":       "title",
	"description": "description",
	"price":       "price",
}

// NoticeFor maps an operation error to the notice describing it.
func NoticeFor(err error) Notice {
	var fe *common.FieldError
	switch {
	case err == nil:
		return Notice{}
	case errors.As(err, &fe):
		label, ok := fieldLabels[fe.Field]
		if !ok {
			label = fe.Field
		}
		return Notice{Icon: IconWarning, Title: "Missing Fields", Text: "Please fill in the " + label + " field!"}
	case errors.Is(err, models.ErrInvalidPrice):
		return Notice{Icon: IconWarning, Title: "Missing Fields", Text: "Please enter a valid price!"}
	case errors.Is(err, common.ErrorValidation):
		return Notice{Icon: IconWarning, Title: "Missing Fields", Text: "Please fill all required fields!"}
	case errors.Is(err, common.ErrorAlreadyExists):
		return Notice{Icon: IconError, Title: "Duplicate Email", Text: "User already exists!"}
	case errors.Is(err, common.ErrorUnauthorized):
		return Notice{Icon: IconWarning, Title: "Please Login", Text: "You need to login to post an ad!"}
	case errors.Is(err, common.ErrorInvalidCredentials):
		return Notice{Icon: IconError, Title: "Invalid Credentials", Text: "Email or password incorrect!"}
	default:
		return Notice{Icon: IconError, Title: "Something Went Wrong", Text: "Please try again later."}
	}
}
