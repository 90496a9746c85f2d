//go:build !windows

package keystore

import "github.com/zalando/go-keyring"

func (o *osKeyring) Get(service, account string) (string, error) {
	return keyring.Get(service, account)
}

func (o *osKeyring) Set(service, account, value string) error {
	return keyring.Set(service, account, value)
}

func (o *osKeyring) Delete(service, account string) error {
	return keyring.Delete(service, account)
}
