package ffi

import (
	"github.com/stretchr/testify/mock"
)

// MockHost is a testify mock of ports.Host.
type MockHost struct {
	mock.Mock
}

func (m *MockHost) ReturnResult(addr, size, ident int32) {
	m.Called(addr, size, ident)
}

func (m *MockHost) ReturnError(code, addr, size, ident int32) {
	m.Called(code, addr, size, ident)
}

func (m *MockHost) GetFFIResult(addr, ident int32) int32 {
	return int32(m.Called(addr, ident).Int(0))
}

func (m *MockHost) AddFFIVar(nameAddr, nameLen, valAddr, valLen, ident int32) int32 {
	return int32(m.Called(nameAddr, nameLen, valAddr, valLen, ident).Int(0))
}

func (m *MockHost) FetchURL(method, urlAddr, urlLen, bodyAddr, bodyLen, ident int32) int32 {
	return int32(m.Called(method, urlAddr, urlLen, bodyAddr, bodyLen, ident).Int(0))
}

func (m *MockHost) CacheSet(keyAddr, keyLen, valAddr, valLen, ttl, ident int32) int32 {
	return int32(m.Called(keyAddr, keyLen, valAddr, valLen, ttl, ident).Int(0))
}

func (m *MockHost) CacheGet(keyAddr, keyLen, ident int32) int32 {
	return int32(m.Called(keyAddr, keyLen, ident).Int(0))
}

func (m *MockHost) DBExec(queryType, nameAddr, nameLen, ident int32) int32 {
	return int32(m.Called(queryType, nameAddr, nameLen, ident).Int(0))
}

func (m *MockHost) GetStaticFile(nameAddr, nameLen, ident int32) int32 {
	return int32(m.Called(nameAddr, nameLen, ident).Int(0))
}

func (m *MockHost) GraphQLQuery(endpointAddr, endpointLen, queryAddr, queryLen, ident int32) int32 {
	return int32(m.Called(endpointAddr, endpointLen, queryAddr, queryLen, ident).Int(0))
}

func (m *MockHost) RequestGetField(fieldType, keyAddr, keyLen, ident int32) int32 {
	return int32(m.Called(fieldType, keyAddr, keyLen, ident).Int(0))
}

func (m *MockHost) RequestSetField(fieldType, keyAddr, keyLen, valAddr, valLen, ident int32) int32 {
	return int32(m.Called(fieldType, keyAddr, keyLen, valAddr, valLen, ident).Int(0))
}

func (m *MockHost) RespSetHeader(keyAddr, keyLen, valAddr, valLen, ident int32) {
	m.Called(keyAddr, keyLen, valAddr, valLen, ident)
}

func (m *MockHost) LogMsg(addr, size, level, ident int32) {
	m.Called(addr, size, level, ident)
}
