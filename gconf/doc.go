/*
Package gconf stores one configuration entity per module in the database.

The entity of module "vault" lives under the key "_c:vault". It is loaded
from the "conf" section of the genesis file and afterwards changed by its
owner through UpdateConfigurationHandler, which applies the non zero fields
of a patch. Configurations are validated before every write.
*/
package gconf
