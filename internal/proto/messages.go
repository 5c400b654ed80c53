// Package proto holds the wire types for the authsvc.Auth service, kept in
// sync by hand with proto/authentication.proto.
//
// The structs implement the legacy protobuf message interface
// (Reset/String/ProtoMessage); the protobuf runtime derives the wire format
// from the struct tags, so no generated descriptor is required.
package proto

import (
	"fmt"

	"google.golang.org/protobuf/protoadapt"
)

// The grpc codec accepts legacy messages through the protoadapt shim; these
// assertions keep every wire type on that contract.
var (
	_ protoadapt.MessageV1 = (*SignUpRequest)(nil)
	_ protoadapt.MessageV1 = (*SignUpResponse)(nil)
	_ protoadapt.MessageV1 = (*SignInRequest)(nil)
	_ protoadapt.MessageV1 = (*SignInResponse)(nil)
	_ protoadapt.MessageV1 = (*SignOutRequest)(nil)
	_ protoadapt.MessageV1 = (*SignOutResponse)(nil)
	_ protoadapt.MessageV1 = (*ChangePasswordRequest)(nil)
	_ protoadapt.MessageV1 = (*ChangePasswordResponse)(nil)
)

type SignUpRequest struct {
	Username string `protobuf:"bytes,1,opt,name=username,proto3" json:"username,omitempty"`
	Password string `protobuf:"bytes,2,opt,name=password,proto3" json:"password,omitempty"`
}

func (m *SignUpRequest) Reset()         { *m = SignUpRequest{} }
func (m *SignUpRequest) String() string { return fmt.Sprintf("SignUpRequest{username:%q}", m.Username) }
func (*SignUpRequest) ProtoMessage()    {}

func (m *SignUpRequest) GetUsername() string {
	if m != nil {
		return m.Username
	}
	return ""
}

func (m *SignUpRequest) GetPassword() string {
	if m != nil {
		return m.Password
	}
	return ""
}

type SignUpResponse struct {
	UserId string `protobuf:"bytes,1,opt,name=user_id,json=userId,proto3" json:"user_id,omitempty"`
}

func (m *SignUpResponse) Reset()         { *m = SignUpResponse{} }
func (m *SignUpResponse) String() string { return fmt.Sprintf("SignUpResponse{user_id:%q}", m.UserId) }
func (*SignUpResponse) ProtoMessage()    {}

func (m *SignUpResponse) GetUserId() string {
	if m != nil {
		return m.UserId
	}
	return ""
}

type SignInRequest struct {
	Username string `protobuf:"bytes,1,opt,name=username,proto3" json:"username,omitempty"`
	Password string `protobuf:"bytes,2,opt,name=password,proto3" json:"password,omitempty"`
}

func (m *SignInRequest) Reset()         { *m = SignInRequest{} }
func (m *SignInRequest) String() string { return fmt.Sprintf("SignInRequest{username:%q}", m.Username) }
func (*SignInRequest) ProtoMessage()    {}

func (m *SignInRequest) GetUsername() string {
	if m != nil {
		return m.Username
	}
	return ""
}

func (m *SignInRequest) GetPassword() string {
	if m != nil {
		return m.Password
	}
	return ""
}

type SignInResponse struct {
	SessionToken string `protobuf:"bytes,1,opt,name=session_token,json=sessionToken,proto3" json:"session_token,omitempty"`
	// Unix seconds; 0 means the session never expires.
	ExpiresAt int64 `protobuf:"varint,2,opt,name=expires_at,json=expiresAt,proto3" json:"expires_at,omitempty"`
}

func (m *SignInResponse) Reset()         { *m = SignInResponse{} }
func (m *SignInResponse) String() string { return "SignInResponse{session_token:<redacted>}" }
func (*SignInResponse) ProtoMessage()    {}

func (m *SignInResponse) GetSessionToken() string {
	if m != nil {
		return m.SessionToken
	}
	return ""
}

func (m *SignInResponse) GetExpiresAt() int64 {
	if m != nil {
		return m.ExpiresAt
	}
	return 0
}

type SignOutRequest struct {
	SessionToken string `protobuf:"bytes,1,opt,name=session_token,json=sessionToken,proto3" json:"session_token,omitempty"`
}

func (m *SignOutRequest) Reset()         { *m = SignOutRequest{} }
func (m *SignOutRequest) String() string { return "SignOutRequest{session_token:<redacted>}" }
func (*SignOutRequest) ProtoMessage()    {}

func (m *SignOutRequest) GetSessionToken() string {
	if m != nil {
		return m.SessionToken
	}
	return ""
}

type SignOutResponse struct{}

func (m *SignOutResponse) Reset()         { *m = SignOutResponse{} }
func (m *SignOutResponse) String() string { return "SignOutResponse{}" }
func (*SignOutResponse) ProtoMessage()    {}

type ChangePasswordRequest struct {
	OldPassword string `protobuf:"bytes,1,opt,name=old_password,json=oldPassword,proto3" json:"old_password,omitempty"`
	NewPassword string `protobuf:"bytes,2,opt,name=new_password,json=newPassword,proto3" json:"new_password,omitempty"`
}

func (m *ChangePasswordRequest) Reset()         { *m = ChangePasswordRequest{} }
func (m *ChangePasswordRequest) String() string { return "ChangePasswordRequest{<redacted>}" }
func (*ChangePasswordRequest) ProtoMessage()    {}

func (m *ChangePasswordRequest) GetOldPassword() string {
	if m != nil {
		return m.OldPassword
	}
	return ""
}

func (m *ChangePasswordRequest) GetNewPassword() string {
	if m != nil {
		return m.NewPassword
	}
	return ""
}

type ChangePasswordResponse struct{}

func (m *ChangePasswordResponse) Reset()         { *m = ChangePasswordResponse{} }
func (m *ChangePasswordResponse) String() string { return "ChangePasswordResponse{}" }
func (*ChangePasswordResponse) ProtoMessage()    {}
