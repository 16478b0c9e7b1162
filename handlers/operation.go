package handlers

import "github.com/gofiber/fiber/v2"

// Operation is the HTTP method of a request mapped onto the closed set the handlers serve.
type Operation int

const (
	OpUnsupported Operation = iota
	OpOptions
	OpGet
	OpPost
	OpPut
	OpDelete
)

func ParseOperation(method string) Operation {
	switch method {
	case fiber.MethodOptions:
		return OpOptions
	case fiber.MethodGet:
		return OpGet
	case fiber.MethodPost:
		return OpPost
	case fiber.MethodPut:
		return OpPut
	case fiber.MethodDelete:
		return OpDelete
	default:
		return OpUnsupported
	}
}
