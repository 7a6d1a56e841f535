// Copyright (c) 2017 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package executor

import (
	"github.com/dowlandaiello/hw4-analysis/pkg/net"
)

// RemoteConfig holds what is needed to reach a load generator host over SSH.
type RemoteConfig struct {
	User      string
	Port      int
	KeyPath   string
	OutputDir string
}

// CreateExecutor is factory for executor depending on address provided. In case of localhost it returns
// Local executor otherwise it returns Remote with ssh config built from given RemoteConfig.
func CreateExecutor(address string, config RemoteConfig) (Executor, error) {
	// NOTE: We don't want to ssh on localhost if not needed.
	if net.IsAddrLocal(address) {
		return NewLocal(config.OutputDir), nil
	}

	port := config.Port
	if port == 0 {
		port = DefaultSSHPort
	}

	sshConfig, err := NewSSHConfig(address, port, config.User, config.KeyPath)
	if err != nil {
		return nil, err
	}

	return NewRemote(*sshConfig, config.OutputDir), nil
}
