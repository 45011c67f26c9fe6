package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ONSdigital/dp-arms-api/arms"
	"github.com/ONSdigital/dp-arms-api/config"
	"github.com/ONSdigital/dp-arms-api/service"
	serviceMock "github.com/ONSdigital/dp-arms-api/service/mock"
	"github.com/ONSdigital/dp-healthcheck/healthcheck"

	. "github.com/smartystreets/goconvey/convey"
)

var (
	ctx           = context.Background()
	testBuildTime = "BuildTime"
	testGitCommit = "GitCommit"
	testVersion   = "Version"
)

var (
	errHealthcheck = fmt.Errorf("healthCheck error")
	errServer      = fmt.Errorf("HTTP Server error")
	errAddCheck    = fmt.Errorf("healthcheck add check error")
)

func TestInit(t *testing.T) {
	Convey("Having a set of mocked dependencies", t, func() {
		cfg, err := config.Get()
		So(err, ShouldBeNil)
		cfg.ARMSAPIKey = "test-key"

		checkedKeys := []string{}
		armsMock := &serviceMock.ARMSClientMock{
			CheckerFunc: func(apiKey string) healthcheck.Checker {
				checkedKeys = append(checkedKeys, apiKey)
				return func(ctx context.Context, state *healthcheck.CheckState) error {
					return state.Update(healthcheck.StatusOK, "ok", http.StatusOK)
				}
			},
		}
		service.GetARMSClient = func(cfg *config.Config) service.ARMSClient {
			return armsMock
		}

		hcMock := &serviceMock.HealthCheckerMock{
			AddCheckFunc: func(name string, checker healthcheck.Checker) error { return nil },
			HandlerFunc:  func(w http.ResponseWriter, req *http.Request) { w.WriteHeader(http.StatusOK) },
		}
		service.GetHealthCheck = func(cfg *config.Config, buildTime, gitCommit, version string) (service.HealthChecker, error) {
			return hcMock, nil
		}

		serverMock := &serviceMock.HTTPServerMock{}
		var router http.Handler
		service.GetHTTPServer = func(bindAddr string, r http.Handler) service.HTTPServer {
			router = r
			return serverMock
		}

		svc := &service.Service{}

		Convey("Given that initialising healthcheck returns an error", func() {
			service.GetHealthCheck = func(cfg *config.Config, buildTime, gitCommit, version string) (service.HealthChecker, error) {
				return nil, errHealthcheck
			}

			Convey("Then service Init fails with the same error and no further initialisations are attempted", func() {
				err := svc.Init(ctx, cfg, testBuildTime, testGitCommit, testVersion)
				So(errors.Unwrap(err), ShouldResemble, errHealthcheck)
				So(svc.Cfg, ShouldResemble, cfg)
				So(svc.ARMSClient, ShouldResemble, armsMock)
				So(svc.Server, ShouldBeNil)

				Convey("And no checkers are registered ", func() {
					So(hcMock.AddCheckCalls(), ShouldHaveLength, 0)
				})
			})
		})

		Convey("Given that Checkers cannot be registered", func() {
			hcMock.AddCheckFunc = func(name string, checker healthcheck.Checker) error { return errAddCheck }

			Convey("Then service Init fails with the expected error", func() {
				err := svc.Init(ctx, cfg, testBuildTime, testGitCommit, testVersion)
				So(err, ShouldNotBeNil)
				So(errors.Is(err, errAddCheck), ShouldBeTrue)
				So(svc.Cfg, ShouldResemble, cfg)
				So(svc.Server, ShouldBeNil)
			})
		})

		Convey("Given a nil config", func() {
			Convey("Then service Init fails", func() {
				err := svc.Init(ctx, nil, testBuildTime, testGitCommit, testVersion)
				So(err, ShouldNotBeNil)
				So(svc.ARMSClient, ShouldBeNil)
			})
		})

		Convey("Given that all dependencies are successfully initialised", func() {
			Convey("Then service Init succeeds, all dependencies are initialised", func() {
				err := svc.Init(ctx, cfg, testBuildTime, testGitCommit, testVersion)
				So(err, ShouldBeNil)
				So(svc.Cfg, ShouldResemble, cfg)
				So(svc.Server, ShouldEqual, serverMock)
				So(svc.HealthCheck, ShouldResemble, hcMock)
				So(svc.ARMSClient, ShouldResemble, armsMock)
				So(svc.API, ShouldNotBeNil)

				Convey("Then the ARMS API check is registered with the configured key", func() {
					So(hcMock.AddCheckCalls(), ShouldHaveLength, 1)
					So(hcMock.AddCheckCalls()[0].Name, ShouldEqual, arms.Service)
					So(checkedKeys, ShouldResemble, []string{"test-key"})

					state := healthcheck.NewCheckState(arms.Service)
					So(hcMock.AddCheckCalls()[0].Checker(ctx, state), ShouldBeNil)
					So(state.Status(), ShouldEqual, healthcheck.StatusOK)
				})

				Convey("Then the health endpoint is served by the health checker", func() {
					w := httptest.NewRecorder()
					router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
					So(w.Code, ShouldEqual, http.StatusOK)
					So(hcMock.HandlerCalls(), ShouldHaveLength, 1)
				})

				Convey("Then the ARMS routes are served by the ARMS client", func() {
					armsMock.StatesFunc = func(ctx context.Context, apiKey string) (*arms.Table, error) {
						return &arms.Table{Columns: []string{"id"}, Rows: []arms.Row{}}, nil
					}
					w := httptest.NewRecorder()
					router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/states", nil))
					So(w.Code, ShouldEqual, http.StatusOK)
					So(armsMock.StatesCalls(), ShouldHaveLength, 1)
					So(armsMock.StatesCalls()[0].APIKey, ShouldEqual, "test-key")
				})
			})
		})
	})
}

func TestStart(t *testing.T) {
	Convey("Having a correctly initialised Service with mocked dependencies", t, func() {
		cfg, err := config.Get()
		So(err, ShouldBeNil)

		hcMock := &serviceMock.HealthCheckerMock{
			StartFunc: func(ctx context.Context) {},
		}

		serverWg := &sync.WaitGroup{}
		serverMock := &serviceMock.HTTPServerMock{}

		svc := &service.Service{
			Cfg:         cfg,
			Server:      serverMock,
			HealthCheck: hcMock,
		}

		Convey("When a service with a successful HTTP server is started", func() {
			serverMock.ListenAndServeFunc = func() error {
				serverWg.Done()
				return nil
			}
			serverWg.Add(1)
			err := svc.Start(ctx, make(chan error, 1))
			So(err, ShouldBeNil)

			Convey("Then healthcheck is started and HTTP server starts listening", func() {
				So(len(hcMock.StartCalls()), ShouldEqual, 1)
				serverWg.Wait() // Wait for HTTP server go-routine to finish
				So(len(serverMock.ListenAndServeCalls()), ShouldEqual, 1)
			})
		})

		Convey("When a service with a failing HTTP server is started", func() {
			serverMock.ListenAndServeFunc = func() error {
				serverWg.Done()
				return errServer
			}
			errChan := make(chan error, 1)
			serverWg.Add(1)
			err := svc.Start(ctx, errChan)
			So(err, ShouldBeNil)

			Convey("Then HTTP server errors are reported to the provided errors channel", func() {
				rxErr := <-errChan
				So(rxErr.Error(), ShouldResemble, fmt.Sprintf("failure in http listen and serve: %s", errServer.Error()))
			})
		})
	})
}

func TestClose(t *testing.T) {
	Convey("Having a correctly initialised service", t, func() {
		cfg, err := config.Get()
		So(err, ShouldBeNil)

		hcStopped := false

		// healthcheck Stop does not depend on any other service being closed/stopped
		hcMock := &serviceMock.HealthCheckerMock{
			StopFunc: func() { hcStopped = true },
		}

		// server Shutdown will fail if healthcheck is not stopped
		serverMock := &serviceMock.HTTPServerMock{
			ShutdownFunc: func(ctx context.Context) error {
				if !hcStopped {
					return fmt.Errorf("server stopped before healthcheck")
				}
				return nil
			},
		}

		svc := &service.Service{
			Cfg:         cfg,
			Server:      serverMock,
			HealthCheck: hcMock,
		}

		Convey("Closing the service results in all the dependencies being closed in the expected order", func() {
			err := svc.Close(context.Background())
			So(err, ShouldBeNil)
			So(hcMock.StopCalls(), ShouldHaveLength, 1)
			So(serverMock.ShutdownCalls(), ShouldHaveLength, 1)
		})

		Convey("If the server fails to stop, the Close operation returns an error", func() {
			serverMock.ShutdownFunc = func(ctx context.Context) error {
				return errServer
			}

			err = svc.Close(context.Background())
			So(err, ShouldNotBeNil)
			So(hcMock.StopCalls(), ShouldHaveLength, 1)
			So(serverMock.ShutdownCalls(), ShouldHaveLength, 1)
		})

		Convey("If the server does not stop within the graceful shutdown timeout, Close times out", func() {
			shortCfg := *cfg
			shortCfg.GracefulShutdownTimeout = 10 * time.Millisecond
			svc.Cfg = &shortCfg
			serverMock.ShutdownFunc = func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			}

			err = svc.Close(context.Background())
			So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
		})
	})
}
