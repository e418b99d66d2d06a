package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"fast-zero/internal/config"
	"fast-zero/internal/db"
	"fast-zero/internal/domain"
	"fast-zero/internal/repository"
	"fast-zero/internal/service"
)

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatalf("migraciones: %v", err)
	}

	jwtSvc, err := service.NewJWTService(cfg.SecretKey, cfg.Algorithm, cfg.AccessTokenTTL())
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewPgUserRepository(pool)
	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	userSvc := service.NewUserService(logger, userRepo, hasher, nil)
	authSvc := service.NewAuthService(logger, userRepo, hasher, jwtSvc, nil)

	cli := &userCLI{
		in:    reader,
		out:   os.Stdout,
		users: userSvc,
		auth:  authSvc,
	}
	if err := cli.run(ctx); err != nil {
		log.Fatal(err)
	}
}

type userCLI struct {
	in    *bufio.Reader
	out   io.Writer
	users *service.UserService
	auth  *service.AuthService

	// sesion actual, obtenida con [3]
	current *domain.User
}

func (c *userCLI) run(ctx context.Context) error {
	for {
		fmt.Fprintln(c.out, "\n===== Usuarios =====")
		fmt.Fprintln(c.out, "[1] Crear usuario")
		fmt.Fprintln(c.out, "[2] Listar usuarios")
		fmt.Fprintln(c.out, "[3] Emitir token")
		fmt.Fprintln(c.out, "[4] Borrar mi usuario")
		fmt.Fprintln(c.out, "[5] Salir")
		fmt.Fprint(c.out, "Selecciona una opcion: ")

		line, err := c.in.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("leer input: %w", err)
		}
		switch strings.TrimSpace(line) {
		case "1":
			if err := c.createFlow(ctx); err != nil {
				fmt.Fprintf(c.out, "Error creando usuario: %v\n", err)
			}
		case "2":
			if err := c.listFlow(ctx); err != nil {
				fmt.Fprintf(c.out, "Error listando usuarios: %v\n", err)
			}
		case "3":
			if err := c.tokenFlow(ctx); err != nil {
				fmt.Fprintf(c.out, "Error emitiendo token: %v\n", err)
			}
		case "4":
			if err := c.deleteFlow(ctx); err != nil {
				fmt.Fprintf(c.out, "Error borrando usuario: %v\n", err)
			}
		case "5":
			return nil
		default:
			fmt.Fprintln(c.out, "Opcion invalida.")
		}
	}
}

func (c *userCLI) prompt(label string) string {
	fmt.Fprint(c.out, label)
	text, _ := c.in.ReadString('\n')
	return strings.TrimSpace(text)
}

func (c *userCLI) createFlow(ctx context.Context) error {
	input := service.UserInput{
		Username: c.prompt("Username: "),
		Email:    c.prompt("Email: "),
		Password: c.prompt("Password: "),
	}
	user, err := c.users.CreateUser(ctx, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Usuario creado: %s <%s> (ID: %d)\n", user.Username, user.Email, user.ID)
	return nil
}

func (c *userCLI) listFlow(ctx context.Context) error {
	if c.current == nil {
		return fmt.Errorf("primero emite un token con [3]")
	}
	page, err := parsePage(c.prompt("Offset [0]: "), c.prompt("Limit [10]: "))
	if err != nil {
		return err
	}
	users, err := c.users.ListUsers(ctx, page, *c.current)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Fprintln(c.out, "No hay usuarios en esta pagina.")
		return nil
	}
	for _, u := range users {
		fmt.Fprintf(c.out, "[%d] %s <%s>\n", u.ID, u.Username, u.Email)
	}
	return nil
}

func (c *userCLI) tokenFlow(ctx context.Context) error {
	token, err := c.auth.IssueToken(ctx, c.prompt("Email: "), c.prompt("Password: "))
	if err != nil {
		return err
	}
	user, err := c.auth.ResolveCurrentUser(ctx, token.AccessToken)
	if err != nil {
		return err
	}
	c.current = &user
	fmt.Fprintf(c.out, "%s %s\n", token.TokenType, token.AccessToken)
	return nil
}

func (c *userCLI) deleteFlow(ctx context.Context) error {
	if c.current == nil {
		return fmt.Errorf("primero emite un token con [3]")
	}
	msg, err := c.users.DeleteUser(ctx, c.current.ID, *c.current)
	if err != nil {
		return err
	}
	c.current = nil
	fmt.Fprintln(c.out, msg.Message)
	return nil
}

// parsePage interpreta offset y limit; vacio usa el valor por defecto.
func parsePage(offset, limit string) (domain.Page, error) {
	page := domain.DefaultPage()
	if offset != "" {
		v, err := strconv.Atoi(offset)
		if err != nil {
			return domain.Page{}, fmt.Errorf("offset invalido: %q", offset)
		}
		page.Offset = v
	}
	if limit != "" {
		v, err := strconv.Atoi(limit)
		if err != nil {
			return domain.Page{}, fmt.Errorf("limit invalido: %q", limit)
		}
		page.Limit = v
	}
	return page, nil
}
