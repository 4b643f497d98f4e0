package fusion

import (
	"testing"
)

func TestValidateVRFName(t *testing.T) {
	tests := []struct {
		name    string
		vrf     string
		wantErr bool
	}{
		{name: "simple name", vrf: "CAMPUS"},
		{name: "with digits and separators", vrf: "Corp_VN-2"},
		{name: "single character", vrf: "a"},
		{name: "32 characters exactly", vrf: "abcdefghijklmnopqrstuvwxyz123456"},
		{name: "empty", vrf: "", wantErr: true},
		{name: "33 characters", vrf: "abcdefghijklmnopqrstuvwxyz1234567", wantErr: true},
		{name: "slash rejected", vrf: "CAMPUS/GUEST", wantErr: true},
		{name: "space rejected", vrf: "CAMPUS VN", wantErr: true},
		{name: "dot rejected", vrf: "campus.vn", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVRFName(tt.vrf)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateVRFName(%q) error = %v, wantErr %v", tt.vrf, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRouteDistinguisher(t *testing.T) {
	tests := []struct {
		name    string
		rd      string
		wantErr bool
	}{
		{name: "ASN:NN", rd: "65000:100"},
		{name: "4-byte ASN", rd: "4294967295:65535"},
		{name: "IP:NN", rd: "10.0.0.1:100"},
		{name: "zero values", rd: "0:0"},
		{name: "empty", rd: "", wantErr: true},
		{name: "ASN too large", rd: "4294967296:1", wantErr: true},
		{name: "NN too large", rd: "65000:65536", wantErr: true},
		{name: "huge ASN", rd: "99999999999:1", wantErr: true},
		{name: "non-numeric left side", rd: "abc:1", wantErr: true},
		{name: "missing colon", rd: "65000", wantErr: true},
		{name: "malformed IP", rd: "10.0.0:100", wantErr: true},
		{name: "IPv6 left side rejected", rd: "::1:100", wantErr: true},
		{name: "trailing garbage", rd: "65000:100x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRouteDistinguisher(tt.rd)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRouteDistinguisher(%q) error = %v, wantErr %v", tt.rd, err, tt.wantErr)
			}
		})
	}
}

func TestValidateIPAddress(t *testing.T) {
	if err := ValidateIPAddress("10.1.1.1"); err != nil {
		t.Errorf("valid address rejected: %v", err)
	}
	if err := ValidateIPAddress("10.1.1.300"); err == nil {
		t.Error("out-of-range octet accepted")
	}
	if err := ValidateIPAddress(""); err == nil {
		t.Error("empty address accepted")
	}
}

func TestValidateInterfaceName(t *testing.T) {
	tests := []struct {
		iface   string
		wantErr bool
	}{
		{iface: "GigabitEthernet0/0/1"},
		{iface: "TenGigabitEthernet1/1/1"},
		{iface: "Gi0/0/1"},
		{iface: "Po10"},
		{iface: "Loopback0"},
		{iface: "TenGigabitEthernet1/1/1.100"},
		{iface: "", wantErr: true},
		{iface: "Vlan100", wantErr: true},
		{iface: "eth0", wantErr: true},
		{iface: "GigabitEthernet", wantErr: true},
	}

	for _, tt := range tests {
		err := ValidateInterfaceName(tt.iface)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateInterfaceName(%q) error = %v, wantErr %v", tt.iface, err, tt.wantErr)
		}
	}
}

func TestBuildVRFConfig(t *testing.T) {
	tests := []struct {
		name    string
		spec    VRFSpec
		wantErr bool
	}{
		{
			name: "minimal valid",
			spec: VRFSpec{Name: "CAMPUS", RD: "65000:100"},
		},
		{
			name: "with route targets",
			spec: VRFSpec{
				Name: "CAMPUS", RD: "65000:100",
				RTExportEnabled: true, RTExportValue: "65000:100",
				RTImportEnabled: true, RTImportValue: "65000:101",
			},
		},
		{
			name: "disabled RT values are not validated",
			spec: VRFSpec{
				Name: "CAMPUS", RD: "65000:100",
				RTExportValue: "garbage", RTImportValue: "also garbage",
			},
		},
		{
			name:    "bad name",
			spec:    VRFSpec{Name: "bad/name", RD: "65000:100"},
			wantErr: true,
		},
		{
			name:    "bad RD",
			spec:    VRFSpec{Name: "CAMPUS", RD: "oops"},
			wantErr: true,
		},
		{
			name: "enabled export with bad value",
			spec: VRFSpec{
				Name: "CAMPUS", RD: "65000:100",
				RTExportEnabled: true, RTExportValue: "nope",
			},
			wantErr: true,
		},
		{
			name: "enabled import with empty value",
			spec: VRFSpec{
				Name: "CAMPUS", RD: "65000:100",
				RTImportEnabled: true,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := BuildVRFConfig(tt.spec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("BuildVRFConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if cfg.Name != tt.spec.Name || cfg.RD != tt.spec.RD {
				t.Errorf("config = %+v", cfg)
			}
			if !tt.spec.RTExportEnabled && cfg.RTExportValue != "" {
				t.Errorf("disabled export value carried: %q", cfg.RTExportValue)
			}
			if !tt.spec.RTImportEnabled && cfg.RTImportValue != "" {
				t.Errorf("disabled import value carried: %q", cfg.RTImportValue)
			}
		})
	}
}
