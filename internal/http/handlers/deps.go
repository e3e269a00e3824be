package handlers

import (
	"dreamhome/internal/auth"
	"dreamhome/internal/services"
	"dreamhome/internal/storage"
)

// Stores bundles the persistence backends chosen at startup.
type Stores struct {
	Users      services.UserStore
	Properties services.PropertyStore
	Inquiries  services.InquiryStore
}

type Deps struct {
	Auth            *services.AuthService
	AuthHandler     *AuthHandler
	UserHandler     *UserHandler
	PropertyHandler *PropertyHandler
	SearchHandler   *SearchHandler
	ContactHandler  *ContactHandler
}

// NewDeps wires services and handlers. cache may be nil.
func NewDeps(st Stores, media storage.Store, cache services.ListingCache, tokens *auth.TokenService) *Deps {
	authSvc := services.NewAuthService(st.Users, tokens)
	userSvc := services.NewUserService(st.Users)
	propSvc := services.NewPropertyService(st.Users, st.Properties, media, cache)
	contactSvc := services.NewContactService(st.Properties, st.Inquiries)

	return &Deps{
		Auth:            authSvc,
		AuthHandler:     &AuthHandler{Auth: authSvc},
		UserHandler:     &UserHandler{Users: userSvc},
		PropertyHandler: &PropertyHandler{Props: propSvc},
		SearchHandler:   &SearchHandler{Props: propSvc},
		ContactHandler:  &ContactHandler{Contact: contactSvc},
	}
}
