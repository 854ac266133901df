package router

import (
	"context"
	"fmt"
	"net/http"

	"boothbuzz-admin/config"
	"boothbuzz-admin/dashboard"
	"boothbuzz-admin/event"
	"boothbuzz-admin/exhibitor"
	"boothbuzz-admin/factory"
	"boothbuzz-admin/handler"
	"boothbuzz-admin/logger"
	"boothbuzz-admin/middleware"
	"boothbuzz-admin/model"
	"boothbuzz-admin/nav"
	"boothbuzz-admin/registration"
	"boothbuzz-admin/response"
	"boothbuzz-admin/society"
	"boothbuzz-admin/user"
	"boothbuzz-admin/validate"
	"boothbuzz-admin/vendors"
	"boothbuzz-admin/venue"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
)

// Router returns the router for all the API handler.
func Router(ctx context.Context, f factory.Factory) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.SetCorrelationIDHeader)
	r.Use(middleware.PanicHandler)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.ResourceNotFound(fmt.Sprintf("The requested resource was not found: path: %s, method: %s", req.URL.Path, req.Method), "The requested resource was not found!").Send(req.Context(), w)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.MethodNotAllowed(fmt.Sprintf("%s is not allowed on %s", req.Method, req.URL.Path)).Send(req.Context(), w)
	})

	r.Use(middleware.ResponseTimeLogging)
	r.Use(middleware.Metrics)
	r.Use(middleware.RequestLogging)

	client := f.Store(ctx)
	societies, err := society.NewSource(viper.GetString(config.SocietySource), client)
	if err != nil {
		logger.Fatalf(ctx, "router: %+v", err)
	}

	Mount(r, f, Services{
		Users:        user.NewUser(client, f.Authenticator(ctx)),
		Events:       event.New(client, f.Blobs(ctx)),
		Venues:       venue.New(client),
		Vendors:      vendors.New(client),
		Exhibitors:   exhibitor.New(client),
		Societies:    societies,
		Dashboard:    dashboard.New(client),
		Registration: registration.New(client, f.SMS()),
	})
	return r
}

type Services struct {
	Users        *user.User
	Events       *event.Event
	Venues       *venue.Venue
	Vendors      *vendors.Vendor
	Exhibitors   *exhibitor.Exhibitor
	Societies    society.Source
	Dashboard    *dashboard.Dashboard
	Registration *registration.Registration
}

// Mount registers every route on r.
func Mount(r *mux.Router, f factory.Factory, s Services) {
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthcheck", handler.Healthcheck).Methods(http.MethodGet)

	baseRouter := r.PathPrefix("/v1").Subrouter()
	baseRouter.Use(middleware.SetContentTypeHeader)

	authRouter := baseRouter.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/login", handler.Login(f)).Methods(http.MethodPost)

	publicRouter := baseRouter.PathPrefix("/public").Subrouter()
	publicRouter.HandleFunc("/events", handler.PublicEvent(s.Registration)).Methods(http.MethodGet)
	publicRouter.HandleFunc("/register", handler.Register(s.Registration, f)).Methods(http.MethodPost)

	ctx := context.Background()
	private := baseRouter.NewRoute().Subrouter()
	private.Use(middleware.Authenticate(f.Tokens(), f.Sessions(ctx)))

	private.HandleFunc("/auth/logout", handler.Logout(f)).Methods(http.MethodPost)
	private.HandleFunc("/session", handler.CurrentSession).Methods(http.MethodGet)
	private.HandleFunc("/session/hints", handler.SessionHints(f)).Methods(http.MethodGet)
	private.HandleFunc("/nav", handler.Nav).Methods(http.MethodGet)
	private.HandleFunc("/dashboard", handler.Dashboard(s.Dashboard)).Methods(http.MethodGet)

	userRouter := private.PathPrefix("/users").Subrouter()
	userRouter.Use(middleware.RequireRoles(model.RoleSuperAdmin, model.RoleAdmin))
	userRouter.HandleFunc("", handler.List[model.User](s.Users)).Methods(http.MethodGet)
	userRouter.HandleFunc("", handler.CreateUser(s.Users, f)).Methods(http.MethodPost)
	userRouter.HandleFunc("/{id}", handler.Get[model.User](s.Users)).Methods(http.MethodGet)
	userRouter.HandleFunc("/{id}", handler.UpdateUser(s.Users, f)).Methods(http.MethodPatch)
	userRouter.HandleFunc("/{id}", handler.Delete(s.Users, handler.Page{Entity: "user", Route: "/users"})).Methods(http.MethodDelete)

	eventRouter := gated(private, "/events")
	eventRouter.HandleFunc("", handler.List[model.Event](s.Events)).Methods(http.MethodGet)
	eventRouter.HandleFunc("", handler.CreateEvent(s.Events, f)).Methods(http.MethodPost)
	eventRouter.HandleFunc("/venue-fill", handler.FillVenue(s.Venues)).Methods(http.MethodGet)
	eventRouter.HandleFunc("/{id}", handler.Get[model.Event](s.Events)).Methods(http.MethodGet)
	eventRouter.HandleFunc("/{id}", handler.UpdateEvent(s.Events, f)).Methods(http.MethodPatch)
	eventRouter.HandleFunc("/{id}", handler.Delete(s.Events, handler.Page{Entity: "event", Route: "/events"})).Methods(http.MethodDelete)

	crud[model.Venue](gated(private, "/venues"), f, s.Venues, handler.Page{Entity: "venue", Route: "/venues"}, validate.Venue)
	crud[model.Vendor](gated(private, "/vendors"), f, s.Vendors, handler.Page{Entity: "vendor", Route: "/vendors"}, validate.Vendor)
	crud[model.Exhibitor](gated(private, "/exhibitors"), f, s.Exhibitors, handler.Page{Entity: "exhibitor", Route: "/exhibitors"}, validate.Exhibitor)
	crud[model.Society](gated(private, "/societies"), f, s.Societies, handler.Page{Entity: "society", Route: "/societies"}, validate.Society)
}

// gated mounts prefix behind the roles the navigation allows for it.
func gated(r *mux.Router, prefix string) *mux.Router {
	sub := r.PathPrefix(prefix).Subrouter()
	if roles := nav.Allowed(prefix); len(roles) > 0 {
		sub.Use(middleware.RequireRoles(roles...))
	}
	return sub
}

func crud[T any](r *mux.Router, f factory.Factory, svc handler.Service[T], page handler.Page, check func(T) error) {
	r.HandleFunc("", handler.List[T](svc)).Methods(http.MethodGet)
	r.HandleFunc("", handler.Create[T](svc, page, check, f)).Methods(http.MethodPost)
	r.HandleFunc("/{id}", handler.Get[T](svc)).Methods(http.MethodGet)
	r.HandleFunc("/{id}", handler.Update[T](svc, page, check, f)).Methods(http.MethodPatch)
	r.HandleFunc("/{id}", handler.Delete(svc, page)).Methods(http.MethodDelete)
}
