package state

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Arnispl/VendingMachine/currency"
	"github.com/Arnispl/VendingMachine/helpers"
	"github.com/Arnispl/VendingMachine/internal/machine"
	ui_config "github.com/Arnispl/VendingMachine/internal/ui/config"
	"github.com/Arnispl/VendingMachine/log2"
	tele_config "github.com/Arnispl/VendingMachine/tele/config"
	"github.com/hashicorp/hcl"
	"github.com/juju/errors"
)

type Config struct {
	// includeSeen contains absolute paths to prevent include loops
	includeSeen map[string]struct{}
	// only used for Unmarshal, do not access
	XXX_Include []ConfigSource `hcl:"include"`

	Machine struct {
		Manufacturer string `hcl:"manufacturer"`
	} `hcl:"machine"`

	Catalog struct {
		Products []ProductConfig `hcl:"product"`
	} `hcl:"catalog"`

	Log struct {
		Debug bool `hcl:"debug"`
	} `hcl:"log"`

	Tele tele_config.Config `hcl:"tele"`

	UI ui_config.Config `hcl:"ui"`
}

type ConfigSource struct {
	Name     string `hcl:"name,key"`
	Optional bool   `hcl:"optional"`
}

type ProductConfig struct {
	Name  string `hcl:"name,key"`
	Price string `hcl:"price"`
	Count int    `hcl:"count"`
}

func (self ProductConfig) String() string {
	return fmt.Sprintf("product.%s price=%s count=%d", self.Name, self.Price, self.Count)
}

const DefaultManufacturer = "Give me all your money Co."

// DefaultConfigText is used when no config file exists.
const DefaultConfigText = `
machine { manufacturer = "Give me all your money Co." }
catalog {
	product "NotCola" { price = "1.50" count = 10 }
	product "Chips" { price = "1.20" count = 8 }
	product "Water still" { price = "1.40" count = 12 }
	product "Water sparkling" { price = "1.40" count = 6 }
	product "Energy Bar" { price = "0.80" count = 8 }
	product "Carrots" { price = "0.90" count = 4 }
	product "Nuts&berries" { price = "1.20" count = 10 }
	product "Last dinner" { price = "4.00" count = 2 }
	product "Beef jerky" { price = "1.90" count = 7 }
	product "Smelly Belly" { price = "2.50" count = 8 }
}
ui { service { enable = true } }
`

// SeedProducts converts catalog config into initial machine catalog.
func (c *Config) SeedProducts() ([]machine.Product, error) {
	errs := make([]error, 0)
	seen := make(map[string]struct{}, len(c.Catalog.Products))
	ps := make([]machine.Product, 0, len(c.Catalog.Products))
	for _, pc := range c.Catalog.Products {
		if strings.TrimSpace(pc.Name) == "" {
			errs = append(errs, errors.Errorf("config %s name is empty", pc.String()))
			continue
		}
		if _, ok := seen[pc.Name]; ok {
			errs = append(errs, errors.Errorf("config %s already defined", pc.String()))
			continue
		}
		seen[pc.Name] = struct{}{}
		price, err := currency.ParseMoney(pc.Price)
		if err != nil {
			errs = append(errs, errors.Annotatef(err, "config %s", pc.String()))
			continue
		}
		if price.IsNegative() {
			errs = append(errs, errors.Errorf("config %s price is negative", pc.String()))
			continue
		}
		if pc.Count < 0 {
			errs = append(errs, errors.Errorf("config %s count is negative", pc.String()))
			continue
		}
		ps = append(ps, machine.Product{Name: pc.Name, Price: price, Available: pc.Count})
	}
	return ps, helpers.FoldErrors(errs)
}

func (c *Config) Manufacturer() string {
	if c.Machine.Manufacturer == "" {
		return DefaultManufacturer
	}
	return c.Machine.Manufacturer
}

func (c *Config) read(log *log2.Log, fs FullReader, source ConfigSource, errs *[]error) {
	norm := fs.Normalize(source.Name)
	if _, ok := c.includeSeen[norm]; ok {
		*errs = append(*errs, errors.Errorf("config duplicate source=%s", source.Name))
		return
	}
	log.Debugf("config reading source='%s' path=%s", source.Name, norm)
	c.includeSeen[source.Name] = struct{}{}
	c.includeSeen[norm] = struct{}{}

	bs, err := fs.ReadAll(norm)
	if bs == nil && err == nil {
		if !source.Optional {
			err = errors.NotFoundf("config required name=%s path=%s", source.Name, norm)
			*errs = append(*errs, err)
		}
		return
	}
	if err != nil {
		*errs = append(*errs, errors.Annotatef(err, "config source=%s", source.Name))
		return
	}

	err = hcl.Unmarshal(bs, c)
	if err != nil {
		err = errors.Annotatef(err, "config unmarshal source=%s", source.Name)
		*errs = append(*errs, err)
		return
	}

	var includes []ConfigSource
	includes, c.XXX_Include = c.XXX_Include, nil
	for _, include := range includes {
		includeNorm := fs.Normalize(include.Name)
		if _, ok := c.includeSeen[includeNorm]; ok {
			err = errors.Errorf("config include loop: from=%s include=%s", source.Name, include.Name)
			*errs = append(*errs, err)
			continue
		}
		c.read(log, fs, include, errs)
	}
}

func ReadConfig(log *log2.Log, fs FullReader, names ...string) (*Config, error) {
	if len(names) == 0 {
		return nil, errors.New("code error ReadConfig() without names")
	}

	if osfs, ok := fs.(*OsFullReader); ok {
		dir, name := filepath.Split(names[0])
		osfs.SetBase(dir)
		names[0] = name
	}
	c := &Config{
		includeSeen: make(map[string]struct{}),
	}
	errs := make([]error, 0, 8)
	for _, name := range names {
		c.read(log, fs, ConfigSource{Name: name}, &errs)
	}
	if _, err := c.SeedProducts(); err != nil {
		errs = append(errs, err)
	}
	return c, helpers.FoldErrors(errs)
}

func MustReadConfig(log *log2.Log, fs FullReader, names ...string) *Config {
	c, err := ReadConfig(log, fs, names...)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	return c
}

// DefaultConfig is built-in catalog of the machine.
func DefaultConfig(log *log2.Log) *Config {
	fs := NewMockFullReader(map[string]string{"default": DefaultConfigText})
	return MustReadConfig(log, fs, "default")
}
