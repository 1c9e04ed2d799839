// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/tms-platform/accounts-api/internal/core"
)

type stubImageStore struct {
	uploads  int
	removed  []string
	failNext bool
}

func (s *stubImageStore) Upload(
	_ context.Context,
	name, _ string,
	_ io.Reader,
	_ int64,
) (*ImageRef, error) {
	if s.failNext {
		return nil, errors.New("bucket unreachable")
	}
	s.uploads++
	return &ImageRef{
		PublicID: fmt.Sprintf("profiles/%d-%s", s.uploads, name),
		URL:      fmt.Sprintf("http://images.local/profiles/%d-%s", s.uploads, name),
	}, nil
}

func (s *stubImageStore) Remove(_ context.Context, publicID string) error {
	s.removed = append(s.removed, publicID)
	return nil
}

type stubTokenIssuer struct {
	issued int
}

func (s *stubTokenIssuer) Issue(userID string) (string, error) {
	s.issued++
	return "token-for-" + userID, nil
}

func newTestService() (*Service, *MemoryRepository, *stubImageStore, *stubTokenIssuer) {
	repo := NewMemoryRepository()
	images := &stubImageStore{}
	tokens := &stubTokenIssuer{}
	return NewService(repo, images, tokens), repo, images, tokens
}

func testImage() ImageUpload {
	return ImageUpload{
		Name:        "avatar.png",
		ContentType: "image/png",
		Reader:      strings.NewReader("png-bytes"),
		Size:        9,
	}
}

func superAdminInput() RegisterInput {
	return RegisterInput{
		FirstName: "Alice",
		LastName:  "Root",
		Email:     "alice@example.com",
		Phone:     "9990001111",
		Password:  "secret1",
		Role:      RoleSuperAdmin,
	}
}

func adminInput() RegisterInput {
	return RegisterInput{
		FirstName: "Bob",
		LastName:  "Deputy",
		Email:     "bob@example.com",
		Phone:     "9990002222",
		Password:  "secret2",
		Role:      RoleAdmin,
		PartyName: "North Party",
	}
}

func appErrStatus(t *testing.T, err error) (int, string) {
	t.Helper()

	var appErr *core.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	return appErr.Status, appErr.Message
}

func TestRegisterSuperAdmin(t *testing.T) {
	svc, _, images, tokens := newTestService()

	u, err := svc.Register(context.Background(), superAdminInput(), testImage())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if u.Role != RoleSuperAdmin {
		t.Fatalf("role = %q", u.Role)
	}
	if u.ManagedBy != nil {
		t.Fatal("SuperAdmin must not be managed by anyone")
	}
	if u.PasswordHash == "secret1" || u.PasswordHash == "" {
		t.Fatal("password stored unhashed")
	}
	if u.IsActive {
		t.Fatal("new account must start inactive")
	}
	if u.ProfileImageID == "" || u.ProfileImageURL == "" {
		t.Fatal("profile image reference missing")
	}
	if images.uploads != 1 {
		t.Fatalf("uploads = %d, want 1", images.uploads)
	}
	// A token is minted on registration even though no cookie is set.
	if tokens.issued != 1 {
		t.Fatalf("issued = %d, want 1", tokens.issued)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _, images, _ := newTestService()

	in := superAdminInput()
	in.Password = "abc"

	_, err := svc.Register(context.Background(), in, testImage())
	if err == nil {
		t.Fatal("expected short password to be rejected")
	}

	status, msg := appErrStatus(t, err)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	want := fmt.Sprintf(
		"Password must be at least %d characters", core.MinPasswordLength,
	)
	if msg != want {
		t.Fatalf("message = %q", msg)
	}
	if images.uploads != 0 {
		t.Fatal("no image should be uploaded for a rejected password")
	}
}

func TestRegisterSecondSuperAdminRejected(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, superAdminInput(), testImage()); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	second := superAdminInput()
	second.Email = "other@example.com"
	second.Phone = "9990009999"

	_, err := svc.Register(ctx, second, testImage())
	if err == nil {
		t.Fatal("expected second SuperAdmin to be rejected")
	}

	status, msg := appErrStatus(t, err)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if msg != "Only one SuperAdmin is allowed" {
		t.Fatalf("message = %q", msg)
	}
}

func TestRegisterAdminRequiresSuperAdmin(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Register(context.Background(), adminInput(), testImage())
	if err == nil {
		t.Fatal("expected registration to fail without a SuperAdmin")
	}

	if _, msg := appErrStatus(t, err); msg != "No SuperAdmin present" {
		t.Fatalf("message = %q", msg)
	}
}

func TestRegisterAdminRequiresPartyName(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, superAdminInput(), testImage()); err != nil {
		t.Fatalf("seed SuperAdmin: %v", err)
	}

	in := adminInput()
	in.PartyName = ""

	_, err := svc.Register(ctx, in, testImage())
	if err == nil {
		t.Fatal("expected registration to fail without a party name")
	}

	if _, msg := appErrStatus(t, err); msg != "Party Name is required for Admin" {
		t.Fatalf("message = %q", msg)
	}
}

func TestRegisterAdminLinksToSuperAdmin(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	super, err := svc.Register(ctx, superAdminInput(), testImage())
	if err != nil {
		t.Fatalf("seed SuperAdmin: %v", err)
	}

	admin, err := svc.Register(ctx, adminInput(), testImage())
	if err != nil {
		t.Fatalf("Register admin: %v", err)
	}

	if admin.ManagedByID() != super.ID {
		t.Fatalf("managed_by = %q, want %q", admin.ManagedByID(), super.ID)
	}
	if admin.IsActive {
		t.Fatal("new admin must start inactive until toggled by the SuperAdmin")
	}
}

func TestRegisterDuplicateEmailOrPhone(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, superAdminInput(), testImage()); err != nil {
		t.Fatalf("seed SuperAdmin: %v", err)
	}

	dup := adminInput()
	dup.Email = "alice@example.com"

	_, err := svc.Register(ctx, dup, testImage())
	if err == nil {
		t.Fatal("expected duplicate email to be rejected")
	}

	status, msg := appErrStatus(t, err)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	want := "Email or phone number is already registered. Please login."
	if msg != want {
		t.Fatalf("message = %q", msg)
	}
}

func TestRegisterUploadFailure(t *testing.T) {
	svc, _, images, _ := newTestService()
	images.failNext = true

	_, err := svc.Register(context.Background(), superAdminInput(), testImage())
	if err == nil {
		t.Fatal("expected upload failure to abort registration")
	}

	status, msg := appErrStatus(t, err)
	if status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", status)
	}
	if msg != "Failed to upload profile image" {
		t.Fatalf("message = %q", msg)
	}
}

func TestLogin(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, superAdminInput(), testImage()); err != nil {
		t.Fatalf("seed SuperAdmin: %v", err)
	}

	u, token, err := svc.Login(ctx, "9990001111", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.Email != "alice@example.com" {
		t.Fatalf("email = %q", u.Email)
	}
	if token == "" {
		t.Fatal("empty token")
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, superAdminInput(), testImage()); err != nil {
		t.Fatalf("seed SuperAdmin: %v", err)
	}

	_, _, wrongPassword := svc.Login(ctx, "9990001111", "nope")
	_, _, unknownPhone := svc.Login(ctx, "0000000000", "secret1")

	if wrongPassword == nil || unknownPhone == nil {
		t.Fatal("expected both logins to fail")
	}

	s1, m1 := appErrStatus(t, wrongPassword)
	s2, m2 := appErrStatus(t, unknownPhone)

	if s1 != http.StatusUnauthorized || s2 != http.StatusUnauthorized {
		t.Fatalf("statuses = %d, %d, want 401", s1, s2)
	}
	if m1 != m2 || m1 != "Invalid phone number or password" {
		t.Fatalf("messages differ: %q vs %q", m1, m2)
	}
}

func TestSetAdminStatus(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	super, err := svc.Register(ctx, superAdminInput(), testImage())
	if err != nil {
		t.Fatalf("seed SuperAdmin: %v", err)
	}
	admin, err := svc.Register(ctx, adminInput(), testImage())
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	updated, err := svc.SetAdminStatus(ctx, super.ID, ToggleStatusRequest{
		AdminID: admin.ID,
		Status:  "No",
	})
	if err != nil {
		t.Fatalf("SetAdminStatus: %v", err)
	}
	if updated.IsActive {
		t.Fatal("admin should be inactive after 'No'")
	}

	updated, err = svc.SetAdminStatus(ctx, super.ID, ToggleStatusRequest{
		AdminID: admin.ID,
		Status:  "Yes",
	})
	if err != nil {
		t.Fatalf("SetAdminStatus: %v", err)
	}
	if !updated.IsActive {
		t.Fatal("admin should be active after 'Yes'")
	}
}

func TestSetAdminStatusUnknownTarget(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	super, err := svc.Register(ctx, superAdminInput(), testImage())
	if err != nil {
		t.Fatalf("seed SuperAdmin: %v", err)
	}

	_, err = svc.SetAdminStatus(ctx, super.ID, ToggleStatusRequest{
		AdminID: "no-such-id",
		Status:  "Yes",
	})
	if err == nil {
		t.Fatal("expected unknown target to be rejected")
	}

	status, msg := appErrStatus(t, err)
	if status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}
	if msg != "Admin not found or not authorized to update status" {
		t.Fatalf("message = %q", msg)
	}
}

func TestSetAdminStatusWrongOwner(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, superAdminInput(), testImage()); err != nil {
		t.Fatalf("seed SuperAdmin: %v", err)
	}
	admin, err := svc.Register(ctx, adminInput(), testImage())
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	// An Admin probing the toggle against itself resolves nothing: the
	// target must be managed by the caller.
	_, err = svc.SetAdminStatus(ctx, admin.ID, ToggleStatusRequest{
		AdminID: admin.ID,
		Status:  "No",
	})
	if err == nil {
		t.Fatal("expected toggle by non-owner to fail")
	}

	if status, _ := appErrStatus(t, err); status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}
}

func TestFetchAdmins(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	super, err := svc.Register(ctx, superAdminInput(), testImage())
	if err != nil {
		t.Fatalf("seed SuperAdmin: %v", err)
	}

	for i := 0; i < 3; i++ {
		in := adminInput()
		in.Email = fmt.Sprintf("admin%d@example.com", i)
		in.Phone = fmt.Sprintf("555000%04d", i)
		if _, err := svc.Register(ctx, in, testImage()); err != nil {
			t.Fatalf("seed admin %d: %v", i, err)
		}
	}

	admins, err := svc.FetchAdmins(ctx, super.ID)
	if err != nil {
		t.Fatalf("FetchAdmins: %v", err)
	}
	if len(admins) != 3 {
		t.Fatalf("got %d admins, want 3", len(admins))
	}
	for _, a := range admins {
		if a.Role != RoleAdmin {
			t.Fatalf("unexpected role %q in admin list", a.Role)
		}
	}
}

func TestUpdateAdminProfile(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, superAdminInput(), testImage()); err != nil {
		t.Fatalf("seed SuperAdmin: %v", err)
	}
	admin, err := svc.Register(ctx, adminInput(), testImage())
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	yearly := SubscriptionYearly
	updated, err := svc.UpdateAdminProfile(ctx, admin.ID, UpdateAdminProfileRequest{
		FirstName:         "Robert",
		LastName:          "Deputy",
		Email:             "robert@example.com",
		Phone:             "9990002222",
		Address:           "12 High St",
		PartyName:         "North Party",
		SubscriptionModel: &yearly,
		IsVerified:        true,
	})
	if err != nil {
		t.Fatalf("UpdateAdminProfile: %v", err)
	}

	if updated.FirstName != "Robert" {
		t.Fatalf("firstName = %q", updated.FirstName)
	}
	if updated.Email != "robert@example.com" {
		t.Fatalf("email = %q", updated.Email)
	}
	if updated.SubscriptionModel == nil || *updated.SubscriptionModel != yearly {
		t.Fatal("subscription model not applied")
	}
	if !updated.IsVerified {
		t.Fatal("isVerified not applied")
	}

	// Whitelist overwrite: a reload reflects the new values.
	reloaded, err := svc.GetAdminProfile(ctx, admin.ID)
	if err != nil {
		t.Fatalf("GetAdminProfile: %v", err)
	}
	if reloaded.FirstName != "Robert" {
		t.Fatal("update not persisted")
	}
}

func TestUpdateAdminProfileRejectsBadSubscription(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, superAdminInput(), testImage()); err != nil {
		t.Fatalf("seed SuperAdmin: %v", err)
	}
	admin, err := svc.Register(ctx, adminInput(), testImage())
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	weekly := "Weekly"
	_, err = svc.UpdateAdminProfile(ctx, admin.ID, UpdateAdminProfileRequest{
		FirstName:         "Bob",
		LastName:          "Deputy",
		Email:             "bob@example.com",
		Phone:             "9990002222",
		PartyName:         "North Party",
		SubscriptionModel: &weekly,
	})
	if err == nil {
		t.Fatal("expected unknown subscription model to be rejected")
	}

	status, msg := appErrStatus(t, err)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if msg != "Invalid subscription model" {
		t.Fatalf("message = %q", msg)
	}
}

func TestUpdateAdminProfileRejectsNonAdmin(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	super, err := svc.Register(ctx, superAdminInput(), testImage())
	if err != nil {
		t.Fatalf("seed SuperAdmin: %v", err)
	}

	cases := []string{super.ID, "missing-id"}
	for _, id := range cases {
		_, err := svc.UpdateAdminProfile(ctx, id, UpdateAdminProfileRequest{})
		if err == nil {
			t.Fatalf("expected update of %q to fail", id)
		}

		status, msg := appErrStatus(t, err)
		if status != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", status)
		}
		if msg != "Admin not found or unauthorized!" {
			t.Fatalf("message = %q", msg)
		}
	}
}

func TestGetProfileNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.GetProfile(context.Background(), "ghost")
	if err == nil {
		t.Fatal("expected missing profile to fail")
	}

	status, msg := appErrStatus(t, err)
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if msg != "User not found" {
		t.Fatalf("message = %q", msg)
	}
}

func TestLoadAuthUser(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	super, err := svc.Register(ctx, superAdminInput(), testImage())
	if err != nil {
		t.Fatalf("seed SuperAdmin: %v", err)
	}

	authUser, err := svc.LoadAuthUser(ctx, super.ID)
	if err != nil {
		t.Fatalf("LoadAuthUser: %v", err)
	}
	if authUser.ID != super.ID || authUser.Role != RoleSuperAdmin {
		t.Fatalf("authUser = %+v", authUser)
	}
	if authUser.FirstName != "Alice" {
		t.Fatalf("firstName = %q", authUser.FirstName)
	}

	if _, err := svc.LoadAuthUser(ctx, "ghost"); err == nil {
		t.Fatal("expected missing user to fail")
	}
}
