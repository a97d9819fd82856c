package http

import (
	"github.com/car-parts-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/car-parts-api/internal/infrastructure/jwt"
	s3infra "github.com/car-parts-api/internal/infrastructure/s3"
	"github.com/car-parts-api/internal/infrastructure/smtp"
	"github.com/car-parts-api/internal/infrastructure/sns"
	stripeinfra "github.com/car-parts-api/internal/infrastructure/stripe"
)

// Deps holds all infrastructure dependencies for the router. Optional
// collaborators (SMS, mail, images, gateway) may be nil; the routes that
// need them degrade or refuse accordingly.
type Deps struct {
	UserRepo   *dynamo.UserRepo
	OrderRepo  *dynamo.OrderRepo
	PartRepo   *dynamo.PartRepo
	ReviewRepo *dynamo.ReviewRepo

	ImageStore *s3infra.Store
	SMSSender  sns.SMSSender
	Mailer     smtp.Mailer

	JWTProvider    *jwtinfra.Provider
	PaymentGateway stripeinfra.Gateway
}
